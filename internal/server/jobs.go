package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"visub/internal/queue"
	"visub/internal/style"
)

// downloadExtensions maps the download file_type parameter to the suffix
// looked for in the job's output directory.
var downloadExtensions = map[string]string{
	"ass":   ".ass",
	"srt":   ".srt",
	"video": ".mp4",
}

// uploadVideo accepts a multipart upload and enqueues a pending job. The
// worker picks it up on its next poll; the handler never processes anything
// itself.
func (s *Server) uploadVideo(c *gin.Context) {
	file, err := c.FormFile("video_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video_file is required"})
		return
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "video/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be a video"})
		return
	}
	if file.Size > s.opts.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File size exceeds maximum allowed size of %dMB", s.opts.MaxUploadBytes>>20),
		})
		return
	}

	subtitleJSON := c.PostForm("subtitle_config")
	if subtitleJSON == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subtitle_config is required"})
		return
	}
	var cfg style.Config
	if err := json.Unmarshal([]byte(subtitleJSON), &cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in configuration"})
		return
	}
	if result := cfg.Validate(); !result.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Configuration validation error",
			"details": result.Errors,
		})
		return
	}

	transcriptionJSON := c.PostForm("transcription_config")
	if transcriptionJSON != "" {
		var settings queue.TranscriptionSettings
		if err := json.Unmarshal([]byte(transcriptionJSON), &settings); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in configuration"})
			return
		}
		if err := settings.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Configuration validation error: %v", err),
			})
			return
		}
	}

	jobID := uuid.NewString()
	jobDir := filepath.Join(s.opts.UploadDir, jobID)
	outputDir := filepath.Join(jobDir, "output")
	// Base strips any path components a client smuggles into the filename.
	videoPath := filepath.Join(jobDir, "input_"+filepath.Base(file.Filename))

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		s.uploadFailed(c, jobID, jobDir, err)
		return
	}
	if err := c.SaveUploadedFile(file, videoPath); err != nil {
		s.uploadFailed(c, jobID, jobDir, err)
		return
	}

	job := &queue.Job{
		ID:                jobID,
		Filename:          file.Filename,
		Source:            videoPath,
		Dir:               jobDir,
		OutputDir:         outputDir,
		ConfigJSON:        subtitleJSON,
		TranscriptionJSON: transcriptionJSON,
	}
	if err := s.store.Create(c.Request.Context(), job); err != nil {
		s.uploadFailed(c, jobID, jobDir, err)
		return
	}

	s.logger.Info("upload accepted",
		zap.String("job_id", jobID),
		zap.String("filename", file.Filename),
		zap.Int64("size", file.Size))

	c.JSON(http.StatusOK, gin.H{
		"job_id":  jobID,
		"status":  "accepted",
		"message": "Video uploaded and processing started",
	})
}

func (s *Server) uploadFailed(c *gin.Context, jobID, jobDir string, err error) {
	os.RemoveAll(jobDir)
	s.logger.Error("upload failed", zap.String("job_id", jobID), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Upload failed: %v", err)})
}

type jobStatusResponse struct {
	JobID       string       `json:"job_id"`
	Status      queue.Status `json:"status"`
	Progress    float64      `json:"progress"`
	Message     string       `json:"message"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	Error       string       `json:"error,omitempty"`
	Files       []string     `json:"files,omitempty"`
}

func (s *Server) jobStatus(c *gin.Context) {
	job, err := s.store.GetByID(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	resp := jobStatusResponse{
		JobID:       job.ID,
		Status:      job.Status,
		Progress:    job.Progress,
		Message:     job.Message,
		CreatedAt:   job.CreatedAt,
		CompletedAt: job.CompletedAt,
		Error:       job.Error,
	}
	if job.Status == queue.StatusCompleted {
		resp.Files = availableFiles(job)
	}

	c.JSON(http.StatusOK, resp)
}

// availableFiles lists the download types a completed job can serve.
func availableFiles(job *queue.Job) []string {
	var files []string
	for _, ft := range []struct {
		name string
		path string
	}{
		{"ass", job.ASSPath},
		{"srt", job.SRTPath},
		{"video", job.VideoPath},
	} {
		if ft.path != "" {
			files = append(files, ft.name)
		}
	}
	return files
}

func (s *Server) downloadFile(c *gin.Context) {
	job, err := s.store.GetByID(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if job.Status != queue.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job not completed yet"})
		return
	}

	fileType := c.Param("file_type")
	ext, ok := downloadExtensions[fileType]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
		return
	}

	path := outputFile(job, fileType, ext)
	if path == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("File type '%s' not found", fileType)})
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

// outputFile resolves a download to a path on disk: the path recorded at
// completion when it still exists, otherwise the first file in the output
// directory with the right extension.
func outputFile(job *queue.Job, fileType, ext string) string {
	recorded := map[string]string{
		"ass":   job.ASSPath,
		"srt":   job.SRTPath,
		"video": job.VideoPath,
	}[fileType]
	if recorded != "" {
		if _, err := os.Stat(recorded); err == nil {
			return recorded
		}
	}

	entries, err := os.ReadDir(job.OutputDir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ext) {
			return filepath.Join(job.OutputDir, entry.Name())
		}
	}
	return ""
}

func (s *Server) deleteJob(c *gin.Context) {
	jobID := c.Param("job_id")
	job, err := s.store.GetByID(c.Request.Context(), jobID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	if job.Dir != "" {
		if err := os.RemoveAll(job.Dir); err != nil {
			s.logger.Warn("failed to remove job directory",
				zap.String("job_id", jobID),
				zap.Error(err))
		}
	}
	if _, err := s.store.Remove(c.Request.Context(), jobID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info("job deleted", zap.String("job_id", jobID))
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

// runCleanup removes expired jobs immediately instead of waiting for the
// worker's next cleanup tick.
func (s *Server) runCleanup(c *gin.Context) {
	if s.cleaner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cleanup is not available"})
		return
	}

	removed, err := s.cleaner.CleanupExpired(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Cleanup failed: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cleanup completed",
		"removed": removed,
	})
}
