package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOllama_Defaults(t *testing.T) {
	p := NewOllama()

	if p.baseURL != DefaultOllamaURL {
		t.Errorf("baseURL = %s, want %s", p.baseURL, DefaultOllamaURL)
	}
	if p.model != DefaultModel {
		t.Errorf("model = %s, want %s", p.model, DefaultModel)
	}
}

func TestNewOllama_WithOptions(t *testing.T) {
	p := NewOllama(
		WithBaseURL("http://custom:8080"),
		WithModel("custom-model"),
	)

	if p.baseURL != "http://custom:8080" {
		t.Errorf("baseURL = %s, want http://custom:8080", p.baseURL)
	}
	if p.ModelName() != "custom-model" {
		t.Errorf("ModelName() = %s, want custom-model", p.ModelName())
	}
}

func TestNewOllama_EmptyOptionsIgnored(t *testing.T) {
	p := NewOllama(WithBaseURL(""), WithModel(""))

	if p.baseURL != DefaultOllamaURL {
		t.Errorf("baseURL = %s, want default", p.baseURL)
	}
	if p.model != DefaultModel {
		t.Errorf("model = %s, want default", p.model)
	}
}

func TestOllama_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != apiPathEmbeddings {
			t.Errorf("path = %s, want %s", r.URL.Path, apiPathEmbeddings)
		}
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Prompt != "attention is all you need" {
			t.Errorf("prompt = %q", req.Prompt)
		}
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	p := NewOllama(WithBaseURL(srv.URL))
	vec, err := p.Embed(context.Background(), "attention is all you need")
	if err != nil {
		t.Fatalf("Embed() error: %v", err)
	}
	if len(vec) != 3 {
		t.Fatalf("len(vec) = %d, want 3", len(vec))
	}
}

func TestOllama_EmbedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllama(WithBaseURL(srv.URL))
	if _, err := p.Embed(context.Background(), "text"); err == nil {
		t.Fatal("Embed() should fail on server error")
	}
}

func TestOllama_EmbedEmptyVector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{})
	}))
	defer srv.Close()

	p := NewOllama(WithBaseURL(srv.URL))
	if _, err := p.Embed(context.Background(), "text"); err == nil {
		t.Fatal("Embed() should fail on empty vector")
	}
}

func TestOllama_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	p := NewOllama(WithBaseURL(srv.URL))
	if !p.Available(context.Background()) {
		t.Error("Available() = false with a live server")
	}

	srv.Close()
	if p.Available(context.Background()) {
		t.Error("Available() = true with a dead server")
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"mismatched lengths", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOllama_ImplementsProvider(t *testing.T) {
	var _ Provider = (*Ollama)(nil)
}
