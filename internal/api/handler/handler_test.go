package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/n4clon1/academic-site/internal/dto"
	"github.com/n4clon1/academic-site/internal/service"
	apperrors "github.com/n4clon1/academic-site/pkg/errors"
	"github.com/n4clon1/academic-site/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock SessionService ──

type mockSessionService struct {
	createResult *dto.SessionResponse
	createErr    error
	closeErr     error

	closedJTI       string
	closedRemaining time.Duration
}

func (m *mockSessionService) Create(_ context.Context) (*dto.SessionResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockSessionService) Close(_ context.Context, _, jti string, remaining time.Duration) error {
	m.closedJTI = jti
	m.closedRemaining = remaining
	return m.closeErr
}
func (m *mockSessionService) StartSweeper(_ context.Context, _ time.Duration) {}

// ── Mock WorkbookService ──

type mockWorkbookService struct {
	loadResult      *dto.WorkbookSummary
	loadErr         error
	loadedFileName  string
	loadedBytes     []byte
	summaryResult   *dto.WorkbookSummary
	summaryErr      error
	facultiesResult []dto.FacultyResponse
	facultiesErr    error
	toggleResult    *dto.SubjectNameSettingResponse
	toggleErr       error
}

func (m *mockWorkbookService) Load(_ context.Context, _, fileName string, r io.Reader) (*dto.WorkbookSummary, error) {
	m.loadedFileName = fileName
	m.loadedBytes, _ = io.ReadAll(r)
	return m.loadResult, m.loadErr
}
func (m *mockWorkbookService) Summary(_ context.Context, _ string) (*dto.WorkbookSummary, error) {
	return m.summaryResult, m.summaryErr
}
func (m *mockWorkbookService) Faculties(_ context.Context, _ string) ([]dto.FacultyResponse, error) {
	return m.facultiesResult, m.facultiesErr
}
func (m *mockWorkbookService) ToggleSubjectName(_ context.Context, _ string, _ int) (*dto.SubjectNameSettingResponse, error) {
	return m.toggleResult, m.toggleErr
}

// ── Mock InstructorService ──

type mockInstructorService struct {
	listResult    []dto.InstructorResponse
	listErr       error
	addResult     *dto.InstructorResponse
	addErr        error
	builtInResult []dto.BuiltInInstructorResponse
	builtInErr    error
	removeResult  *dto.RemoveInstructorResponse
	removeErr     error
	toggleResult  *dto.InstructorResponse
	toggleErr     error
	setAllResult  *dto.CountResponse
	setAllErr     error

	setAllValue *bool
}

func (m *mockInstructorService) List(_ context.Context, _ string) ([]dto.InstructorResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockInstructorService) Add(_ context.Context, _ string, _ *dto.CreateInstructorRequest) (*dto.InstructorResponse, error) {
	return m.addResult, m.addErr
}
func (m *mockInstructorService) ListBuiltIn(_ context.Context, _ string) ([]dto.BuiltInInstructorResponse, error) {
	return m.builtInResult, m.builtInErr
}
func (m *mockInstructorService) AddBuiltIn(_ context.Context, _ string, _ *dto.AddBuiltInInstructorRequest) (*dto.InstructorResponse, error) {
	return m.addResult, m.addErr
}
func (m *mockInstructorService) Remove(_ context.Context, _ string, _ int64) (*dto.RemoveInstructorResponse, error) {
	return m.removeResult, m.removeErr
}
func (m *mockInstructorService) ToggleSelected(_ context.Context, _ string, _ int64) (*dto.InstructorResponse, error) {
	return m.toggleResult, m.toggleErr
}
func (m *mockInstructorService) SetAllSelected(_ context.Context, _ string, selected bool) (*dto.CountResponse, error) {
	m.setAllValue = &selected
	return m.setAllResult, m.setAllErr
}

// ── Mock AssignmentService ──

type mockAssignmentService struct {
	attachResult *dto.AssignmentResponse
	attachErr    error
	detachErr    error
	listResult   []dto.AssignmentResponse
	listErr      error

	lastList *dto.AssignmentListRequest
}

func (m *mockAssignmentService) Attach(_ context.Context, _ string, _ *dto.AttachRequest) (*dto.AssignmentResponse, error) {
	return m.attachResult, m.attachErr
}
func (m *mockAssignmentService) Detach(_ context.Context, _ string, _ int64) error {
	return m.detachErr
}
func (m *mockAssignmentService) List(_ context.Context, _ string, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, error) {
	m.lastList = req
	return m.listResult, m.listErr
}

// ── Mock ExportService ──

type mockExportService struct {
	file    *dto.ExportFile
	err     error
	lastReq *dto.ExportRequest
}

func (m *mockExportService) ExportWorkbook(_ context.Context, _ string, req *dto.ExportRequest) (*dto.ExportFile, error) {
	m.lastReq = req
	return m.file, m.err
}
func (m *mockExportService) ExportAssignmentsCSV(_ context.Context, _ string) (*dto.ExportFile, error) {
	return m.file, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupGin() (*gin.Engine, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	r := gin.New()
	return r, w
}

// withSession 模拟会话中间件注入的上下文
func withSession(c *gin.Context) {
	c.Set(ctxSessionID, "test-session-id")
	c.Set(ctxTokenJTI, "test-jti")
	c.Set(ctxTokenExp, time.Now().Add(time.Hour))
	c.Next()
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func multipartFile(t *testing.T, field, name string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	if err != nil {
		t.Fatalf("构造表单失败: %v", err)
	}
	fw.Write(content)
	mw.Close()
	return &buf, mw.FormDataContentType()
}

// ═══════════════════════════════════════════════════════════
// SessionHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSessionHandler_Create_Success(t *testing.T) {
	mock := &mockSessionService{createResult: &dto.SessionResponse{SessionID: "sid", Token: "tok", ExpiresIn: 3600}}
	h := NewSessionHandler(mock)

	r, w := setupGin()
	r.POST("/sessions", h.CreateSession)
	r.ServeHTTP(w, httptest.NewRequest("POST", "/sessions", nil))

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestSessionHandler_Close(t *testing.T) {
	mock := &mockSessionService{}
	h := NewSessionHandler(mock)

	r, w := setupGin()
	r.DELETE("/sessions/current", withSession, h.CloseSession)
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/sessions/current", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.closedJTI != "test-jti" || mock.closedRemaining <= 0 {
		t.Errorf("应传入令牌 jti 与剩余有效期，实际 %q / %v", mock.closedJTI, mock.closedRemaining)
	}
}

func TestSessionHandler_Close_Unauthenticated(t *testing.T) {
	h := NewSessionHandler(&mockSessionService{})

	r, w := setupGin()
	r.DELETE("/sessions/current", h.CloseSession)
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/sessions/current", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestSessionHandler_Close_SessionGone(t *testing.T) {
	h := NewSessionHandler(&mockSessionService{closeErr: service.ErrSessionNotFound})

	r, w := setupGin()
	r.DELETE("/sessions/current", withSession, h.CloseSession)
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/sessions/current", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// WorkbookHandler Tests
// ═══════════════════════════════════════════════════════════

func TestWorkbookHandler_Upload_Success(t *testing.T) {
	mock := &mockWorkbookService{loadResult: &dto.WorkbookSummary{FileName: "load.xlsx", DirectionCount: 3}}
	h := NewWorkbookHandler(mock)

	body, contentType := multipartFile(t, "file", "load.xlsx", []byte("PK-content"))
	req := httptest.NewRequest("POST", "/workbook", body)
	req.Header.Set("Content-Type", contentType)

	r, w := setupGin()
	r.POST("/workbook", withSession, h.Upload)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if mock.loadedFileName != "load.xlsx" || string(mock.loadedBytes) != "PK-content" {
		t.Errorf("文件名或内容未传入服务: %q / %q", mock.loadedFileName, mock.loadedBytes)
	}
}

func TestWorkbookHandler_Upload_MissingFile(t *testing.T) {
	h := NewWorkbookHandler(&mockWorkbookService{})

	req := httptest.NewRequest("POST", "/workbook", strings.NewReader(""))
	r, w := setupGin()
	r.POST("/workbook", withSession, h.Upload)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestWorkbookHandler_Upload_ParseError(t *testing.T) {
	mock := &mockWorkbookService{loadErr: apperrors.Parse(errors.New("zip: not a valid zip file"))}
	h := NewWorkbookHandler(mock)

	body, contentType := multipartFile(t, "file", "broken.xlsx", []byte("garbage"))
	req := httptest.NewRequest("POST", "/workbook", body)
	req.Header.Set("Content-Type", contentType)

	r, w := setupGin()
	r.POST("/workbook", withSession, h.Upload)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12003 || resp.Message != "Ошибка при обработке файла" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Details != "zip: not a valid zip file" {
		t.Errorf("details 应携带底层原因，实际 %q", resp.Details)
	}
}

func TestWorkbookHandler_Upload_FileReadError(t *testing.T) {
	mock := &mockWorkbookService{loadErr: apperrors.FileRead(errors.New("unexpected EOF"))}
	h := NewWorkbookHandler(mock)

	body, contentType := multipartFile(t, "file", "load.xlsx", []byte("x"))
	req := httptest.NewRequest("POST", "/workbook", body)
	req.Header.Set("Content-Type", contentType)

	r, w := setupGin()
	r.POST("/workbook", withSession, h.Upload)
	r.ServeHTTP(w, req)

	if resp := parseResponse(w); w.Code != http.StatusBadRequest || resp.Code != 12002 {
		t.Errorf("expected 400/12002, got %d/%d", w.Code, resp.Code)
	}
}

func TestWorkbookHandler_GetSummary_NoFile(t *testing.T) {
	h := NewWorkbookHandler(&mockWorkbookService{summaryErr: service.ErrNoFileLoaded})

	r, w := setupGin()
	r.GET("/workbook", withSession, h.GetSummary)
	r.ServeHTTP(w, httptest.NewRequest("GET", "/workbook", nil))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12001 || resp.Message != "Сначала загрузите файл" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestWorkbookHandler_ListFaculties(t *testing.T) {
	mock := &mockWorkbookService{facultiesResult: []dto.FacultyResponse{{Name: "ФЭН"}}}
	h := NewWorkbookHandler(mock)

	r, w := setupGin()
	r.GET("/workbook/faculties", withSession, h.ListFaculties)
	r.ServeHTTP(w, httptest.NewRequest("GET", "/workbook/faculties", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestWorkbookHandler_ToggleSubjectName_BadID(t *testing.T) {
	h := NewWorkbookHandler(&mockWorkbookService{})

	r, w := setupGin()
	r.POST("/workbook/directions/:id/subject-name/toggle", withSession, h.ToggleSubjectName)
	r.ServeHTTP(w, httptest.NewRequest("POST", "/workbook/directions/abc/subject-name/toggle", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestWorkbookHandler_ToggleSubjectName_Disabled(t *testing.T) {
	h := NewWorkbookHandler(&mockWorkbookService{toggleErr: service.ErrFeatureDisabled})

	r, w := setupGin()
	r.POST("/workbook/directions/:id/subject-name/toggle", withSession, h.ToggleSubjectName)
	r.ServeHTTP(w, httptest.NewRequest("POST", "/workbook/directions/3/subject-name/toggle", nil))

	if resp := parseResponse(w); w.Code != http.StatusForbidden || resp.Code != 12005 {
		t.Errorf("expected 403/12005, got %d/%d", w.Code, resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// InstructorHandler Tests
// ═══════════════════════════════════════════════════════════

func TestInstructorHandler_Create_Success(t *testing.T) {
	mock := &mockInstructorService{addResult: &dto.InstructorResponse{ID: 1, Name: "Иванов", Selected: true}}
	h := NewInstructorHandler(mock)

	req := httptest.NewRequest("POST", "/instructors", jsonBody(dto.CreateInstructorRequest{Name: "Иванов"}))
	req.Header.Set("Content-Type", "application/json")

	r, w := setupGin()
	r.POST("/instructors", withSession, h.CreateInstructor)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestInstructorHandler_Create_BlankName(t *testing.T) {
	h := NewInstructorHandler(&mockInstructorService{})

	req := httptest.NewRequest("POST", "/instructors", jsonBody(map[string]string{"name": "   "}))
	req.Header.Set("Content-Type", "application/json")

	r, w := setupGin()
	r.POST("/instructors", withSession, h.CreateInstructor)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13001 {
		t.Errorf("expected error code 13001, got %d", resp.Code)
	}
}

func TestInstructorHandler_Create_BadJSON(t *testing.T) {
	h := NewInstructorHandler(&mockInstructorService{})

	req := httptest.NewRequest("POST", "/instructors", strings.NewReader("invalid json"))
	req.Header.Set("Content-Type", "application/json")

	r, w := setupGin()
	r.POST("/instructors", withSession, h.CreateInstructor)
	r.ServeHTTP(w, req)

	if resp := parseResponse(w); w.Code != http.StatusBadRequest || resp.Code != 10001 {
		t.Errorf("expected 400/10001, got %d/%d", w.Code, resp.Code)
	}
}

func TestInstructorHandler_Create_Duplicate(t *testing.T) {
	h := NewInstructorHandler(&mockInstructorService{addErr: service.ErrDuplicateInstructor})

	req := httptest.NewRequest("POST", "/instructors", jsonBody(dto.CreateInstructorRequest{Name: "Иванов"}))
	req.Header.Set("Content-Type", "application/json")

	r, w := setupGin()
	r.POST("/instructors", withSession, h.CreateInstructor)
	r.ServeHTTP(w, req)

	if resp := parseResponse(w); w.Code != http.StatusConflict || resp.Code != 13002 {
		t.Errorf("expected 409/13002, got %d/%d", w.Code, resp.Code)
	}
}

func TestInstructorHandler_Delete_NotFound(t *testing.T) {
	h := NewInstructorHandler(&mockInstructorService{removeErr: service.ErrInstructorNotFound})

	r, w := setupGin()
	r.DELETE("/instructors/:id", withSession, h.DeleteInstructor)
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/instructors/42", nil))

	if resp := parseResponse(w); w.Code != http.StatusNotFound || resp.Code != 13003 {
		t.Errorf("expected 404/13003, got %d/%d", w.Code, resp.Code)
	}
}

func TestInstructorHandler_SetSelection(t *testing.T) {
	mock := &mockInstructorService{setAllResult: &dto.CountResponse{Count: 2}}
	h := NewInstructorHandler(mock)

	req := httptest.NewRequest("POST", "/instructors/selection", jsonBody(map[string]bool{"selected": false}))
	req.Header.Set("Content-Type", "application/json")

	r, w := setupGin()
	r.POST("/instructors/selection", withSession, h.SetSelection)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.setAllValue == nil || *mock.setAllValue {
		t.Error("selected=false 应原样传入服务")
	}
}

func TestInstructorHandler_SetSelection_MissingField(t *testing.T) {
	h := NewInstructorHandler(&mockInstructorService{})

	req := httptest.NewRequest("POST", "/instructors/selection", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r, w := setupGin()
	r.POST("/instructors/selection", withSession, h.SetSelection)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AssignmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAssignmentHandler_Attach_Success(t *testing.T) {
	mock := &mockAssignmentService{attachResult: &dto.AssignmentResponse{ID: 7}}
	h := NewAssignmentHandler(mock)

	req := httptest.NewRequest("POST", "/assignments", jsonBody(map[string]interface{}{
		"instructor_id": 1, "direction_id": 0, "is_subgroup": true,
	}))
	req.Header.Set("Content-Type", "application/json")

	r, w := setupGin()
	r.POST("/assignments", withSession, h.Attach)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAssignmentHandler_Attach_MissingDirection(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	req := httptest.NewRequest("POST", "/assignments", jsonBody(map[string]interface{}{"instructor_id": 1}))
	req.Header.Set("Content-Type", "application/json")

	r, w := setupGin()
	r.POST("/assignments", withSession, h.Attach)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAssignmentHandler_Attach_Errors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
	}{
		{service.ErrNoInstructors, http.StatusConflict, 14001},
		{service.ErrSubgroupNotFound, http.StatusBadRequest, 14002},
		{service.ErrAlreadyAssigned, http.StatusConflict, 14003},
		{service.ErrDirectionNotFound, http.StatusNotFound, 12004},
		{errors.New("boom"), http.StatusInternalServerError, 50000},
	}
	for _, tc := range cases {
		h := NewAssignmentHandler(&mockAssignmentService{attachErr: tc.err})
		req := httptest.NewRequest("POST", "/assignments", jsonBody(map[string]interface{}{
			"instructor_id": 1, "direction_id": 2,
		}))
		req.Header.Set("Content-Type", "application/json")

		r, w := setupGin()
		r.POST("/assignments", withSession, h.Attach)
		r.ServeHTTP(w, req)

		if resp := parseResponse(w); w.Code != tc.status || resp.Code != tc.code {
			t.Errorf("%v: expected %d/%d, got %d/%d", tc.err, tc.status, tc.code, w.Code, resp.Code)
		}
	}
}

func TestAssignmentHandler_List_Filters(t *testing.T) {
	mock := &mockAssignmentService{listResult: []dto.AssignmentResponse{}}
	h := NewAssignmentHandler(mock)

	r, w := setupGin()
	r.GET("/assignments", withSession, h.ListAssignments)
	r.ServeHTTP(w, httptest.NewRequest("GET", "/assignments?instructor_id=5&direction_id=2", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.lastList == nil || mock.lastList.InstructorID == nil || *mock.lastList.InstructorID != 5 ||
		mock.lastList.DirectionID == nil || *mock.lastList.DirectionID != 2 {
		t.Errorf("过滤参数未正确绑定: %+v", mock.lastList)
	}
}

func TestAssignmentHandler_Detach(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	r, w := setupGin()
	r.DELETE("/assignments/:id", withSession, h.Detach)
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/assignments/123", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportWorkbook_Success(t *testing.T) {
	mock := &mockExportService{file: &dto.ExportFile{
		FileName:    "Нагрузка.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("PK"),
	}}
	h := NewExportHandler(mock)

	r, w := setupGin()
	r.GET("/export/workbook", withSession, h.ExportWorkbook)
	r.ServeHTTP(w, httptest.NewRequest("GET", "/export/workbook?scope=all&file_name=x", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") || !strings.Contains(cd, "filename*=UTF-8''%D0%9D") {
		t.Errorf("Content-Disposition 不符: %s", cd)
	}
	if mock.lastReq.Scope != dto.ExportScopeAll || mock.lastReq.FileName != "x" {
		t.Errorf("查询参数未正确绑定: %+v", mock.lastReq)
	}
	if w.Body.String() != "PK" {
		t.Error("响应体应为文件内容")
	}
}

func TestExportHandler_ExportWorkbook_BadScope(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	r, w := setupGin()
	r.GET("/export/workbook", withSession, h.ExportWorkbook)
	r.ServeHTTP(w, httptest.NewRequest("GET", "/export/workbook?scope=everyone", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_ExportWorkbook_Preconditions(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrNoFileLoaded, 12001},
		{service.ErrNoAssignments, 15001},
		{service.ErrNoSelectedInstructors, 15002},
		{service.ErrNoSelectedAssignments, 15003},
	}
	for _, tc := range cases {
		h := NewExportHandler(&mockExportService{err: tc.err})

		r, w := setupGin()
		r.GET("/export/workbook", withSession, h.ExportWorkbook)
		r.ServeHTTP(w, httptest.NewRequest("GET", "/export/workbook", nil))

		resp := parseResponse(w)
		if w.Code != http.StatusConflict || resp.Code != tc.code {
			t.Errorf("%v: expected 409/%d, got %d/%d", tc.err, tc.code, w.Code, resp.Code)
		}
		if resp.Message != tc.err.Error() {
			t.Errorf("message 应为用户提示 %q，实际 %q", tc.err.Error(), resp.Message)
		}
	}
}

func TestExportHandler_ExportWorkbook_GenerateFail(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportGenerateFail})

	r, w := setupGin()
	r.GET("/export/workbook", withSession, h.ExportWorkbook)
	r.ServeHTTP(w, httptest.NewRequest("GET", "/export/workbook", nil))

	if resp := parseResponse(w); w.Code != http.StatusInternalServerError || resp.Code != 15004 {
		t.Errorf("expected 500/15004, got %d/%d", w.Code, resp.Code)
	}
}

func TestExportHandler_ExportAssignmentsCSV(t *testing.T) {
	mock := &mockExportService{file: &dto.ExportFile{
		FileName:    "report.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte("instructor\nИванов\n"),
	}}
	h := NewExportHandler(mock)

	r, w := setupGin()
	r.GET("/export/assignments.csv", withSession, h.ExportAssignmentsCSV)
	r.ServeHTTP(w, httptest.NewRequest("GET", "/export/assignments.csv", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type 不符: %s", ct)
	}
}
