package modhttp_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"github.com/adamwoolhether/modhttp"
	"github.com/adamwoolhether/modhttp/config"
)

func ExampleSession_DownloadFile() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "MZ...")
	}))
	defer ts.Close()

	dir, _ := os.MkdirTemp("", "mods")
	defer os.RemoveAll(dir)

	s, err := modhttp.New(config.DefaultSettings())
	if err != nil {
		fmt.Println(err)
		return
	}

	res := s.DownloadFile(context.Background(), ts.URL+"/Mod.dll", filepath.Join(dir, "Mod.dll"))
	fmt.Println(res.OK(), filepath.Base(res.Path))

	// Output:
	// true Mod.dll
}

func ExampleSession_DownloadZip() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	s, err := modhttp.New(config.DefaultSettings())
	if err != nil {
		fmt.Println(err)
		return
	}

	res := s.DownloadZip(context.Background(), ts.URL+"/missing.zip", "")
	fmt.Println(res.OK(), res.Reason)

	// Output:
	// false not_found
}

func ExampleSession_SizeCap() {
	s, err := modhttp.New(config.Settings{
		RequestTimeout:     30 * time.Second,
		NormalRequestLimit: 5,
		ModRequestLimit:    50,
		ZipTempDir:         filepath.Join(os.TempDir(), "modhelper", "zip-temp"),
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(s.SizeCap(modhttp.PurposeNormal), s.SizeCap(modhttp.PurposeModUpdate))

	// Output:
	// 5000000 50000000
}
