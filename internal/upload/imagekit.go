package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"roastery-be/internal/logger"

	"go.uber.org/zap"
)

// Uploader pushes an image to the CDN and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

type imageKit struct {
	privateKey string
	uploadURL  string
	httpClient *http.Client
}

func NewImageKit(privateKey, uploadURL string) Uploader {
	if privateKey == "" {
		logger.L().Warn("ImageKit private key is empty")
	}

	return &imageKit{
		privateKey: privateKey,
		uploadURL:  uploadURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (ik *imageKit) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("file_name", fileName),
		zap.Int("size", len(data)),
	)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.WriteField("fileName", fileName); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", ik.uploadURL, &body)
	if err != nil {
		log.Error("failed creating upload request", zap.Error(err))
		return "", err
	}

	req.SetBasicAuth(ik.privateKey, "")
	req.Header.Set("Content-Type", mw.FormDataContentType())

	log.Info("uploading image to ImageKit")

	resp, err := ik.httpClient.Do(req)
	if err != nil {
		log.Error("ImageKit request failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read upload response", zap.Error(err))
		return "", fmt.Errorf("failed to read imagekit response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("ImageKit returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return "", fmt.Errorf("imagekit error: %s", string(bodyBytes))
	}

	var res uploadResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding upload response", zap.Error(err))
		return "", err
	}

	log.Info("image uploaded", zap.String("url", res.URL))
	return res.URL, nil
}
