package dataset

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "review,sentiment\n\"A fine, moving film\",positive\nterrible waste,negative\nok actually,1\n")

	reviews, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(reviews) != 3 {
		t.Fatalf("loaded %d reviews, want 3", len(reviews))
	}
	if reviews[0].Label != 1 || reviews[1].Label != 0 || reviews[2].Label != 1 {
		t.Errorf("labels = %v", Labels(reviews))
	}
	if reviews[0].Text != "A fine, moving film" {
		t.Errorf("quoted text mangled: %q", reviews[0].Text)
	}
}

func TestLoadCSVNoHeader(t *testing.T) {
	path := writeCSV(t, "loved it,positive\nhated it,negative\n")

	reviews, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(reviews) != 2 {
		t.Fatalf("loaded %d reviews, want 2", len(reviews))
	}
}

func TestLoadCSVBadLabel(t *testing.T) {
	path := writeCSV(t, "fine film,maybe\n")

	if _, err := LoadCSV(path); err == nil {
		t.Error("expected error for unknown sentiment value")
	}
}

func TestSplitDeterministic(t *testing.T) {
	reviews := make([]Review, 10)
	for i := range reviews {
		reviews[i] = Review{Text: string(rune('a' + i)), Label: i % 2}
	}

	train1, test1 := Split(reviews, 0.8, 42)
	train2, test2 := Split(reviews, 0.8, 42)

	if len(train1) != 8 || len(test1) != 2 {
		t.Fatalf("split sizes %d/%d, want 8/2", len(train1), len(test1))
	}
	if !reflect.DeepEqual(train1, train2) || !reflect.DeepEqual(test1, test2) {
		t.Error("same seed produced different splits")
	}

	// The input order is untouched.
	if reviews[0].Text != "a" || reviews[9].Text != "j" {
		t.Error("Split modified its input")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache(t.TempDir())

	lists := [][]string{{"film", "good"}, {"bad"}}
	if err := c.Save("token_lists", lists); err != nil {
		t.Fatal(err)
	}
	if !c.Has("token_lists") {
		t.Fatal("artifact missing after Save")
	}

	var got [][]string
	if err := c.Load("token_lists", &got); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, lists) {
		t.Errorf("round trip = %v, want %v", got, lists)
	}
}

func archiveWith(t *testing.T, name string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	content := []byte("loved it,positive\n")
	hdr := &tar.Header{Name: name, Mode: 0644, Size: int64(len(content)), Typeflag: tar.TypeReg}
	if err := tw.WriteHeader(hdr); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func serveArchive(t *testing.T, archive []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDownloadExtractsArchive(t *testing.T) {
	srv := serveArchive(t, archiveWith(t, "data/reviews.csv"))
	dest := filepath.Join(t.TempDir(), "reviews")

	if err := Download(srv.URL, dest); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dest, "reviews.csv")); err != nil {
		t.Errorf("extracted file missing: %v", err)
	}
}

func TestDownloadRejectsEscapingEntries(t *testing.T) {
	for _, name := range []string{"/abs.txt", "../escape.txt"} {
		srv := serveArchive(t, archiveWith(t, name))
		dest := filepath.Join(t.TempDir(), "reviews")

		if err := Download(srv.URL, dest); err == nil {
			t.Errorf("archive entry %q was extracted", name)
		}
	}
}

func TestCacheDisabled(t *testing.T) {
	c := NewCache("")

	if c.Has("anything") {
		t.Error("disabled cache claims to have artifacts")
	}
	if err := c.Save("anything", 1); err != nil {
		t.Errorf("disabled cache Save errored: %v", err)
	}
	if err := c.Load("anything", new(int)); err == nil {
		t.Error("disabled cache Load should error")
	}
}
