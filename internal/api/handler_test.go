package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"datasuite/adapters/excel"
	"datasuite/app"
	"datasuite/domain/table"
	"datasuite/internal/session"
	"datasuite/ports"
)

type fakeRenderer struct {
	ext string
}

func (r *fakeRenderer) Render(clean table.CleanTable, report table.AnalysisReport, outputDir, stamp string) (string, error) {
	return filepath.Join(outputDir, "Report_"+stamp+r.ext), nil
}

type fakeNotifier struct {
	sent ports.Notification
}

func (n *fakeNotifier) Send(req ports.Notification) (ports.DeliveryResult, error) {
	n.sent = req
	return ports.DeliveryResult{Sent: true, Recipients: req.Recipients, Message: "ok"}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeNotifier) {
	t.Helper()
	notifier := &fakeNotifier{}
	openReader := func(path string) ports.TableReader { return excel.NewDataReader(path) }
	svc := app.NewReportService(openReader, &fakeRenderer{ext: ".xlsx"}, &fakeRenderer{ext: ".pdf"}, notifier, t.TempDir(), 50)
	h := NewHandler(svc, session.NewManager(), t.TempDir())
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, notifier
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session status = %d", resp.StatusCode)
	}
	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body.SessionID
}

func uploadCSV(t *testing.T, srv *httptest.Server, sessionID, csvData string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "sales.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(csvData)); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/sessions/"+sessionID+"/dataset", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

const fixtureCSV = "Date,Product,Sales\n2024-01-01,Widget,100\n2024-01-02,Gadget,250\n2024-01-02,Gadget,250\n2024-01-03,Widget,\n"

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}
}

func TestSessionPipeline(t *testing.T) {
	srv, notifier := newTestServer(t)
	id := createSession(t, srv)

	resp := uploadCSV(t, srv, id, fixtureCSV)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status = %d", resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/api/sessions/" + id + "/analysis")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("analysis status = %d", resp.StatusCode)
	}
	var report table.AnalysisReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.TotalRows != 3 {
		t.Errorf("analysis rows = %d, want 3", report.TotalRows)
	}
	if report.DuplicatesRemoved != 1 {
		t.Errorf("duplicates removed = %d, want 1", report.DuplicatesRemoved)
	}

	resp, err = http.Post(srv.URL+"/api/sessions/"+id+"/reports", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reports status = %d", resp.StatusCode)
	}
	var generated struct {
		ReportID  string `json:"report_id"`
		ExcelPath string `json:"excel_path"`
		PDFPath   string `json:"pdf_path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		t.Fatal(err)
	}
	if generated.ReportID == "" {
		t.Error("reports response carries no report_id")
	}
	if !strings.HasSuffix(generated.ExcelPath, ".xlsx") || !strings.HasSuffix(generated.PDFPath, ".pdf") {
		t.Errorf("artifact paths = %s, %s", generated.ExcelPath, generated.PDFPath)
	}

	payload := strings.NewReader(`{"recipients": "ops@example.com", "subject": "Weekly"}`)
	resp, err = http.Post(srv.URL+"/api/sessions/"+id+"/notify", "application/json", payload)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("notify status = %d", resp.StatusCode)
	}
	if len(notifier.sent.Attachments) != 2 {
		t.Errorf("notification attachments = %v", notifier.sent.Attachments)
	}
	if notifier.sent.Subject != "Weekly" {
		t.Errorf("notification subject = %q", notifier.sent.Subject)
	}
}

func TestAnalysisWithoutDataset(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	resp, err := http.Get(srv.URL + "/api/sessions/" + id + "/analysis")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("analysis without dataset status = %d, want 409", resp.StatusCode)
	}
}

func TestUploadRejectsSingleColumn(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	resp := uploadCSV(t, srv, id, "A\n1\n2\n")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("single column upload status = %d, want 400", resp.StatusCode)
	}
}

func TestUnknownSession(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/sessions/nope/analysis")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown session status = %d, want 404", resp.StatusCode)
	}
}

func TestDeleteSession(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/sessions/"+id, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}

	resp2, err := http.Get(srv.URL + "/api/sessions/" + id)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("deleted session status = %d, want 404", resp2.StatusCode)
	}
}
