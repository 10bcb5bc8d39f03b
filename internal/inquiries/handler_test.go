package inquiries

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jmkang/pepper-shop/internal/repository"
	"github.com/jmkang/pepper-shop/pkg/models"
)

type fakeInquiryRepo struct {
	inquiries map[int64]*models.Inquiry
	nextID    int64
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{inquiries: make(map[int64]*models.Inquiry), nextID: 1}
}

func (f *fakeInquiryRepo) Create(_ context.Context, inq *models.Inquiry) error {
	inq.ID = f.nextID
	inq.Status = models.InquiryStatusWaiting
	inq.CreatedAt = time.Now()
	f.nextID++
	f.inquiries[inq.ID] = inq
	return nil
}

func (f *fakeInquiryRepo) GetByID(_ context.Context, id int64) (*models.Inquiry, error) {
	inq, ok := f.inquiries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return inq, nil
}

func (f *fakeInquiryRepo) List(_ context.Context) ([]*models.Inquiry, error) {
	var out []*models.Inquiry
	for _, inq := range f.inquiries {
		out = append(out, inq)
	}
	return out, nil
}

func (f *fakeInquiryRepo) Respond(_ context.Context, id int64, response string) error {
	inq, ok := f.inquiries[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	inq.Response = response
	inq.Status = models.InquiryStatusAnswered
	inq.AnsweredAt = &now
	return nil
}

func (f *fakeInquiryRepo) CountWaiting(_ context.Context) (int, error) {
	count := 0
	for _, inq := range f.inquiries {
		if inq.Status == models.InquiryStatusWaiting {
			count++
		}
	}
	return count, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func newTestRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/inquiries", h.CreateInquiry).Methods("POST")
	router.HandleFunc("/api/admin/inquiries", h.ListInquiries).Methods("GET")
	router.HandleFunc("/api/admin/inquiries/{id:[0-9]+}", h.GetInquiry).Methods("GET")
	router.HandleFunc("/api/admin/inquiries/{id:[0-9]+}/response", h.RespondToInquiry).Methods("POST")
	return router
}

func post(t *testing.T, router *mux.Router, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateInquiry(t *testing.T) {
	repo := newFakeInquiryRepo()
	h := NewHandler(repo, testLogger())
	router := newTestRouter(h)

	rec := post(t, router, "/api/inquiries", map[string]string{
		"title":         "배송 문의",
		"content":       "주문한 상품이 언제 도착하나요?",
		"customer_name": "김철수",
		"email":         "kim@example.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	inq := repo.inquiries[1]
	if inq == nil {
		t.Fatal("inquiry was not stored")
	}
	if inq.Status != models.InquiryStatusWaiting {
		t.Errorf("status = %q, want waiting", inq.Status)
	}
}

func TestCreateInquiryValidation(t *testing.T) {
	repo := newFakeInquiryRepo()
	h := NewHandler(repo, testLogger())
	router := newTestRouter(h)

	rec := post(t, router, "/api/inquiries", map[string]string{
		"title": "제목만 있는 문의",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if len(repo.inquiries) != 0 {
		t.Error("inquiry was stored despite invalid request")
	}
}

func TestRespondToInquiry(t *testing.T) {
	repo := newFakeInquiryRepo()
	h := NewHandler(repo, testLogger())
	router := newTestRouter(h)

	post(t, router, "/api/inquiries", map[string]string{
		"title":         "배송 문의",
		"content":       "언제 도착하나요?",
		"customer_name": "김철수",
	})

	rec := post(t, router, "/api/admin/inquiries/1/response", map[string]string{
		"response": "내일 출고 예정입니다.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	inq := repo.inquiries[1]
	if inq.Status != models.InquiryStatusAnswered {
		t.Errorf("status = %q, want answered", inq.Status)
	}
	if inq.Response == "" {
		t.Error("response was not stored")
	}
	if inq.AnsweredAt == nil {
		t.Error("answered_at was not set")
	}
}

func TestRespondToInquiryValidation(t *testing.T) {
	repo := newFakeInquiryRepo()
	h := NewHandler(repo, testLogger())
	router := newTestRouter(h)

	rec := post(t, router, "/api/admin/inquiries/1/response", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty response: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = post(t, router, "/api/admin/inquiries/99/response", map[string]string{"response": "답변"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing inquiry: status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
