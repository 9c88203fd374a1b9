package tests

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// E2E test for the interactive export: a fake HR API, a real template and the built binary.

const ns = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

// writeTemplate writes a minimal .docx whose placeholders are split across runs.
func writeTemplate(t *testing.T, dir string) string {
	t.Helper()

	body := `<w:p><w:r><w:t xml:space="preserve">Ο/Η ${LAST</w:t></w:r>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">NAME} ${FIRSTNAME}</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>${START_</w:t></w:r><w:r><w:t>DATE}</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>${DAYS_COUNT}</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/></Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
			`</Relationships>`,
		"word/document.xml": fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?><w:document %s><w:body>%s<w:sectPr/></w:body></w:document>`, ns, body),
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, "regular.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func fakeHRAPI(t *testing.T) *httptest.Server {
	t.Helper()
	routes := map[string]string{
		"/mod-personnel/employee/":    `[{"id": 1, "firstName": "Γιάννης", "lastName": "Παπαδόπουλος", "departmentId": 3, "vatNo": "999"}]`,
		"/mod-leaves/leave-type/":     `[{"id": 2, "title": "Κανονική άδεια", "remark": "regular.docx"}]`,
		"/mod-leaves/leave/":          `[{"id": 5, "employeeId": 1, "leaveTypeId": 2, "status": "approved", "requestDate": "01.06.2024", "startDate": "01.07.2024", "endDate": "03.07.2024", "remark": ""}]`,
		"/mod-leaves/leave/5":         `{"id": 5, "leaveDays": [{}, {}, {}]}`,
		"/mod-personnel/department/3": `{"id": 3, "title": "Πληροφορική"}`,
	}
	mux := http.NewServeMux()
	for path, body := range routes {
		body := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if _, _, ok := r.BasicAuth(); !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, dir, baseURL, templates, output string) string {
	t.Helper()
	content := fmt.Sprintf(`api:
  base_url: %s
  username: ${TIMEOFF_USERNAME}
  password: ${TIMEOFF_PASSWORD}
input:
  ask_for_latest_leaves_to_show: true
  default_latest_leaves_to_show: 10
  leave_status: approved
output:
  template_dir: %s
  output_dir: %s
  date_format: "%%d/%%m/%%Y"
  filename_pattern: "${LASTNAME} ${START_DATE}"
`, baseURL, templates, output)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestE2E_InteractiveExport(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	srv := fakeHRAPI(t)
	root := t.TempDir()
	templates := filepath.Join(root, "templates")
	output := filepath.Join(root, "output")
	for _, d := range []string{templates, output} {
		require.NoError(t, os.MkdirAll(d, 0755))
	}
	writeTemplate(t, templates)
	cfgPath := writeConfig(t, root, srv.URL, templates, output)

	envFile := filepath.Join(root, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TIMEOFF_USERNAME=admin\nTIMEOFF_PASSWORD=secret\n"), 0600))

	cmd := exec.Command("./"+binPath, "--config", cfgPath, "--env-file", envFile)
	cmd.Env = isolatedEnv(t)
	cmd.Stdin = strings.NewReader("\n1\n0\n")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", out)

	result := filepath.Join(output, "παπαδόπουλος 01072024.docx")
	assert.Contains(t, string(out), result)

	doc := readDocumentXML(t, result)
	for _, want := range []string{"Παπαδόπουλος", "Γιάννης", "01/07/2024", ">3<"} {
		assert.Contains(t, doc, want)
	}
	assert.NotContains(t, doc, "${", "no placeholder survives")
	assert.Contains(t, doc, "<w:b/>", "run formatting is preserved")
}

func TestE2E_ExitCodes(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	srv := fakeHRAPI(t)
	root := t.TempDir()
	templates := filepath.Join(root, "templates")
	require.NoError(t, os.MkdirAll(templates, 0755))

	tests := []struct {
		name     string
		output   string
		env      []string
		wantCode int
	}{
		{"missing username", root, nil, 2},
		{"missing output dir", filepath.Join(root, "nope"), []string{"TIMEOFF_USERNAME=a", "TIMEOFF_PASSWORD=b"}, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfgPath := writeConfig(t, t.TempDir(), srv.URL, templates, tc.output)
			cmd := exec.Command("./"+binPath, "export", "--config", cfgPath)
			cmd.Env = append(isolatedEnv(t), tc.env...)
			cmd.Stdin = strings.NewReader("0\n")
			out, err := cmd.CombinedOutput()

			var exitErr *exec.ExitError
			require.ErrorAs(t, err, &exitErr, "output: %s", out)
			assert.Equal(t, tc.wantCode, exitErr.ExitCode(), "output: %s", out)
		})
	}
}

func readDocumentXML(t *testing.T, path string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	require.FailNow(t, "word/document.xml not found", path)
	return ""
}
