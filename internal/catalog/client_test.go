package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mfergus/tiller/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, "test-token", 5*time.Second, testLogger())
}

func TestListRecordsMapsRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/records" {
			t.Errorf("path = %q, want /records", r.URL.Path)
		}
		if got := r.URL.Query().Get("filter"); got != "mug" {
			t.Errorf("filter = %q, want %q", got, "mug")
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"records":[
			{"uuid":"r1","name":"Mug","sku":"MUG-1","price":12.5,"salePrice":9.99,"stockLevel":4,"isAvailable":true,"imageUrl":["http://img/1.png"]},
			{"uuid":"r2","name":"Mug XL","sku":"MUG-2","price":15,"stockLevel":0,"isAvailable":false}
		]}`)
	}))
	defer srv.Close()

	got, err := newTestClient(srv).ListRecords(context.Background(), "mug")
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	want := domain.RecordSummary{
		ID: "r1", DisplayName: "Mug", SKU: "MUG-1",
		UnitPrice: 12.5, SalePrice: 9.99, StockLevel: 4,
		IsAvailable: true, ThumbnailURL: "http://img/1.png",
	}
	if got[0] != want {
		t.Errorf("row[0] = %+v, want %+v", got[0], want)
	}
	if got[1].ThumbnailURL != "" {
		t.Errorf("row[1].ThumbnailURL = %q, want empty", got[1].ThumbnailURL)
	}
}

func TestGetRecordNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"no such record"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetRecord(context.Background(), "missing")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestGetRecordMapsDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/records/r9" {
			t.Errorf("path = %q", r.URL.Path)
		}
		io.WriteString(w, `{"uuid":"r9","name":"Lamp","sku":"LMP-9","description":"desk lamp",
			"price":40,"salePrice":35,"stockLevel":7,"isAvailable":true,
			"barcode":"12345","category":"lighting","tags":["desk","led"]}`)
	}))
	defer srv.Close()

	got, err := newTestClient(srv).GetRecord(context.Background(), "r9")
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if got.Description != "desk lamp" || got.Barcode != "12345" || got.Category != "lighting" {
		t.Errorf("detail = %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "desk" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListRecords(context.Background(), "")
	if !errors.Is(err, domain.ErrAuthFailed) {
		t.Errorf("err = %v, want ErrAuthFailed", err)
	}
}

func TestServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv).ListRecords(context.Background(), "")
	if !errors.Is(err, domain.ErrServerOffline) {
		t.Errorf("err = %v, want ErrServerOffline", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q", r.Method)
		}
		if r.URL.Path != "/records/r3" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := newTestClient(srv).DeleteRecord(context.Background(), "r3"); err != nil {
		t.Errorf("DeleteRecord: %v", err)
	}
}

func TestCreateStaffMultipartShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/staff" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		if got := r.FormValue("name"); got != "Ada" {
			t.Errorf("name = %q", got)
		}
		if got := r.FormValue("termsAccepted"); got != "true" {
			t.Errorf("termsAccepted = %q", got)
		}
		files := r.MultipartForm.File["file"]
		if len(files) != 2 {
			t.Fatalf("files = %d, want 2", len(files))
		}
		if files[0].Filename != "badge.png" {
			t.Errorf("filename = %q", files[0].Filename)
		}
		if ct := files[0].Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("content-type = %q", ct)
		}
		f, _ := files[1].Open()
		data, _ := io.ReadAll(f)
		f.Close()
		if string(data) != "webp-bytes" {
			t.Errorf("file body = %q", data)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	form := domain.StaffForm{
		Name: "Ada", Email: "ada@example.com", PhoneNumber: "555-0100",
		JoiningDate: "2026-08-28", Role: "manager", TermsAccepted: true,
	}
	assets := []domain.AssetDraft{
		{Ref: "d1", Name: "badge.png", MIMEType: "image/png", Data: []byte("png-bytes")},
		{Ref: "d2", Name: "photo.webp", MIMEType: "image/webp", Data: []byte("webp-bytes")},
	}
	if err := newTestClient(srv).CreateStaff(context.Background(), form, assets); err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
}

func TestCreateStaffServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"duplicate email"}`, http.StatusConflict)
	}))
	defer srv.Close()

	err := newTestClient(srv).CreateStaff(context.Background(), domain.StaffForm{Name: "Ada"}, nil)
	var se *SubmitError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SubmitError", err)
	}
	if se.Status != http.StatusConflict || se.Message != "duplicate email" {
		t.Errorf("SubmitError = %+v", se)
	}
}

func TestCreateStaffOpaqueErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestClient(srv).CreateStaff(context.Background(), domain.StaffForm{Name: "Ada"}, nil)
	var se *SubmitError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SubmitError", err)
	}
	if se.Message != "unexpected status 500" {
		t.Errorf("Message = %q", se.Message)
	}
}
