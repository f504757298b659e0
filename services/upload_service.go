// Package services: services/upload_service.go
//
// Media upload adapter. Each upload is a two-step protocol: fetch a
// short-lived signed ticket from the backend, then POST the file
// directly to the media host with the ticket's credentials. The stored
// asset's secure URL comes back from the host; nothing is retained on
// failure.
package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"
	"time"

	"ambica-decor/logger"
	"ambica-decor/models"
	"ambica-decor/websocket"
)

// ErrUploadFailed is the single error every failed upload collapses to.
// The caller decides whether to retry; no partial state survives.
var ErrUploadFailed = errors.New("upload failed")

// SignatureSource issues upload tickets. Implemented by the API client.
type SignatureSource interface {
	CloudinarySignature(resourceType string) (models.CloudinarySignature, error)
}

// UploadFile is one pending file in a batch.
type UploadFile struct {
	Name         string
	ResourceType string // "image" or "video"
	Data         io.Reader
}

// UploadServiceInterface is the media upload adapter.
type UploadServiceInterface interface {
	Upload(file UploadFile) (string, error)
	UploadAll(files []UploadFile) ([]string, error)
}

// UploadService uploads files to Cloudinary using backend-issued tickets.
type UploadService struct {
	signatures SignatureSource
	http       *http.Client
	// uploadURLOverride points the adapter at a stub host in tests; empty
	// in production, where the URL is derived from the ticket.
	uploadURLOverride string
}

// NewUploadService builds an UploadService over the given ticket source.
func NewUploadService(signatures SignatureSource, uploadURLOverride string) *UploadService {
	return &UploadService{
		signatures:        signatures,
		http:              &http.Client{},
		uploadURLOverride: uploadURLOverride,
	}
}

// uploadURL resolves the media host endpoint for a ticket.
func (s *UploadService) uploadURL(sig models.CloudinarySignature, resourceType string) string {
	if s.uploadURLOverride != "" {
		return s.uploadURLOverride
	}
	return fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/%s/upload", sig.CloudName, resourceType)
}

// Upload transfers one file and returns its permanent secure URL.
func (s *UploadService) Upload(file UploadFile) (string, error) {
	started := time.Now()

	resourceType := file.ResourceType
	if resourceType == "" {
		resourceType = "image"
	}

	sig, err := s.signatures.CloudinarySignature(resourceType)
	if err != nil {
		logger.Error.Printf("[upload] signature request failed for %s: %v", file.Name, err)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if _, err := io.Copy(part, file.Data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	fields := map[string]string{
		"api_key":   sig.APIKey,
		"timestamp": strconv.FormatInt(sig.Timestamp, 10),
		"signature": sig.Signature,
		"folder":    sig.Folder,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	resp, err := s.http.Post(s.uploadURL(sig, resourceType), writer.FormDataContentType(), &body)
	if err != nil {
		logger.Error.Printf("[upload] media host transfer failed for %s: %v", file.Name, err)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error.Printf("[upload] media host rejected %s: status %d", file.Name, resp.StatusCode)
		return "", fmt.Errorf("%w: media host status %d", ErrUploadFailed, resp.StatusCode)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.SecureURL == "" {
		return "", fmt.Errorf("%w: malformed media host response", ErrUploadFailed)
	}

	websocket.PublishUploadLatency(float64(time.Since(started).Milliseconds()))
	logger.Info.Printf("[upload] %s stored as %s", file.Name, result.SecureURL)
	return result.SecureURL, nil
}

// UploadAll uploads a batch concurrently, one ticket and one transfer
// per file. All-or-nothing: if any upload fails the whole batch fails
// and URLs already obtained from sibling uploads are discarded. Result
// order matches input order regardless of completion order.
func (s *UploadService) UploadAll(files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	urls := make([]string, len(files))
	errs := make([]error, len(files))
	var wg sync.WaitGroup

	for i := range files {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			urls[i], errs[i] = s.Upload(files[i])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return urls, nil
}
