package storage

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"estate-portal-server/logger"

	"go.uber.org/zap"
)

// Image hosting is delegated to Cloudinary; uploads happen client-side.
// The server only removes images when a listing is taken down, best-effort:
// a failed delete never fails the parent operation.
// Env: CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET,
// CLOUDINARY_FOLDER (optional).

// DeleteImage removes an image from the CDN by its delivery URL.
func DeleteImage(imageURL string) bool {
	if !strings.Contains(imageURL, "res.cloudinary.com") {
		return false
	}

	parts := strings.Split(imageURL, "/")
	if len(parts) < 2 {
		return false
	}
	publicID := strings.Split(parts[len(parts)-1], ".")[0]

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		logger.GetLogger().Warn("cloudinary env vars missing, skipping image delete")
		return false
	}
	if folder := os.Getenv("CLOUDINARY_FOLDER"); folder != "" {
		publicID = folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, apiSecret)
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))

	form := url.Values{}
	form.Add("public_id", publicID)
	form.Add("api_key", apiKey)
	form.Add("timestamp", timestamp)
	form.Add("signature", signature)

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/destroy"
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.GetLogger().Warn("image delete request failed", zap.Error(err))
		return false
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil || res.StatusCode != http.StatusOK {
		logger.GetLogger().Warn("image delete rejected", zap.Int("status", res.StatusCode))
		return false
	}

	var deleteRes struct {
		Result string `json:"result"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &deleteRes); err != nil {
		return false
	}
	if deleteRes.Error.Message != "" || deleteRes.Result != "ok" {
		logger.GetLogger().Warn("image delete not ok",
			zap.String("result", deleteRes.Result),
			zap.String("error", deleteRes.Error.Message))
		return false
	}
	return true
}
