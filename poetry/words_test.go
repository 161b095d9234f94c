/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestParseWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"header and quoted field", "Word\nhello,\"world\",\n,foo,", []string{"hello", "world", "foo"}},
		{"header only", "Word", []string{}},
		{"empty", "", []string{}},
		{"crlf endings", "Word\r\nsun,moon\r\nsea", []string{"sun", "moon", "sea"}},
		{"mixed endings and blank lines", "Word\r\n\r\nsun\n\n\rmoon\r", []string{"sun", "moon"}},
		{"whitespace around quotes", "Word\n  \"star\"  , sky ", []string{"star", "sky"}},
		{"only one quote layer", "Word\n\"\"quoted\"\"", []string{"\"quoted\""}},
		{"lone quote kept", "Word\n\"", []string{"\""}},
		{"empty quotes dropped", "Word\n\"\",sea", []string{"sea"}},
		{"spaces inside quotes kept", "Word\n \" c \" ,\" \"", []string{" c ", " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWords(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseWords(%q) error: %v", tt.input, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseWords(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseWordsNeverEmptyOrQuoted(t *testing.T) {
	input := "Words\n\"a\", b ,,\"\",\" c \"\r\n\"d\"\n,,,\n\"e\",f"

	got, err := ParseWords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseWords error: %v", err)
	}

	for _, w := range got {
		if w == "" {
			t.Errorf("empty word in %q", got)
		}
		if len(w) >= 2 && strings.HasPrefix(w, `"`) && strings.HasSuffix(w, `"`) {
			t.Errorf("word %q still wrapped in quotes", w)
		}
	}
}

func TestLoadWordsDefault(t *testing.T) {
	got, err := LoadWords(context.Background(), nil)
	if err != nil {
		t.Fatalf("LoadWords(nil) error: %v", err)
	}
	if !slices.Equal(got, DefaultWords) {
		t.Fatalf("LoadWords(nil) did not return the built-in list")
	}

	got[0] = "changed"
	if DefaultWords[0] == "changed" {
		t.Errorf("LoadWords(nil) returned the shared built-in slice")
	}
}

func TestLoadWordsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/words.csv", []byte("Word\nlove,\"night\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadWords(context.Background(), FileSource{Fs: fs, Path: "/words.csv"})
	if err != nil {
		t.Fatalf("LoadWords error: %v", err)
	}
	if want := []string{"love", "night"}; !slices.Equal(got, want) {
		t.Errorf("LoadWords = %q, want %q", got, want)
	}

	_, err = LoadWords(context.Background(), FileSource{Fs: fs, Path: "/missing.csv"})
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Errorf("missing file error = %v, want ErrResourceUnavailable", err)
	}
}

func TestLoadWordsHTTP(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/words.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Word\nrain,storm"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	got, err := LoadWords(context.Background(), NewSource(srv.URL+"/words.csv"))
	if err != nil {
		t.Fatalf("LoadWords error: %v", err)
	}
	if want := []string{"rain", "storm"}; !slices.Equal(got, want) {
		t.Errorf("LoadWords = %q, want %q", got, want)
	}

	_, err = LoadWords(context.Background(), NewSource(srv.URL+"/missing.csv"))
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Errorf("404 error = %v, want ErrResourceUnavailable", err)
	}
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"", "<nil>"},
		{"http://example.com/words.csv", "poetry.HTTPSource"},
		{"https://example.com/words.csv", "poetry.HTTPSource"},
		{"words.csv", "poetry.FileSource"},
		{"/srv/words.csv", "poetry.FileSource"},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			var got string
			switch NewSource(tt.location).(type) {
			case nil:
				got = "<nil>"
			case HTTPSource:
				got = "poetry.HTTPSource"
			case FileSource:
				got = "poetry.FileSource"
			}
			if got != tt.want {
				t.Errorf("NewSource(%q) = %s, want %s", tt.location, got, tt.want)
			}
		})
	}
}
