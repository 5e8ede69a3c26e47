package domain

import (
	"path/filepath"
	"strings"
)

// videoContentTypes lists the accepted upload extensions.
var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
}

type UploadResult struct {
	AssetID string `json:"asset_id"`
	URL     string `json:"url"`
}

// TranscodeJob is published for every raw upload; the worker writes the HLS
// rendition under OutputPrefix.
type TranscodeJob struct {
	AssetID      string `json:"asset_id"`
	SourceKey    string `json:"source_key"`
	OutputPrefix string `json:"output_prefix"`
	PlaylistKey  string `json:"playlist_key"`
}

func IsVideoFile(filename string) bool {
	_, ok := videoContentTypes[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// VideoContentType returns the MIME type for a video file name, or
// application/octet-stream when the extension is not a known video.
func VideoContentType(filename string) string {
	if ct, ok := videoContentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

func RawVideoKey(assetID, filename string) string {
	return "raw/" + assetID + strings.ToLower(filepath.Ext(filename))
}

func NewTranscodeJob(assetID, sourceKey string) TranscodeJob {
	prefix := "hls/" + assetID + "/"
	return TranscodeJob{
		AssetID:      assetID,
		SourceKey:    sourceKey,
		OutputPrefix: prefix,
		PlaylistKey:  prefix + assetID + ".m3u8",
	}
}
