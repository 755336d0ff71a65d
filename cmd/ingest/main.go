package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
)

// Small CLI to push local files into a running knowledge base instance and
// wait for the ingestion pipeline to finish.

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type uploadData struct {
	DocumentId string `json:"document_id"`
	Filename   string `json:"filename"`
	Status     string `json:"status"`
}

type documentData struct {
	Status       string  `json:"status"`
	ChunkCount   *int    `json:"chunk_count"`
	ErrorMessage *string `json:"error_message"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:3000/api", "API base URL")
	wait := flag.Bool("wait", true, "wait for ingestion to finish")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		color.Red("Usage: ingest [-url http://host:port/api] [-wait=false] file.txt [more files...]")
		os.Exit(1)
	}

	color.Cyan("🚀 Uploading %d file(s) to %s\n", len(files), *baseURL)

	failed := 0
	for _, path := range files {
		color.Yellow("\n[UPLOAD] %s", path)

		doc, err := uploadFile(*baseURL, path)
		if err != nil {
			color.Red("Failed: %v", err)
			failed++
			continue
		}
		color.Green("Accepted: document_id=%s status=%s", doc.DocumentId, doc.Status)

		if !*wait {
			continue
		}
		if err := waitForCompletion(*baseURL, doc.DocumentId); err != nil {
			color.Red("Failed: %v", err)
			failed++
		}
	}

	if failed > 0 {
		color.Red("\n%d file(s) failed", failed)
		os.Exit(1)
	}
	color.Green("\n✅ All files ingested")
}

func uploadFile(baseURL, path string) (*uploadData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	resp, err := http.Post(baseURL+"/documents/upload", w.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload rejected (%s): %s", resp.Status, body)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	var doc uploadData
	if err := json.Unmarshal(env.Data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func waitForCompletion(baseURL, documentId string) error {
	for {
		time.Sleep(500 * time.Millisecond)

		resp, err := http.Get(baseURL + "/documents/" + documentId)
		if err != nil {
			return err
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status check failed (%s): %s", resp.Status, body)
		}

		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return err
		}
		var doc documentData
		if err := json.Unmarshal(env.Data, &doc); err != nil {
			return err
		}

		switch doc.Status {
		case "completed":
			chunks := 0
			if doc.ChunkCount != nil {
				chunks = *doc.ChunkCount
			}
			color.Green("Completed: %d chunks", chunks)
			return nil
		case "failed":
			reason := "unknown"
			if doc.ErrorMessage != nil {
				reason = *doc.ErrorMessage
			}
			return fmt.Errorf("ingestion failed: %s", reason)
		}
		// pending / processing, keep polling
	}
}
