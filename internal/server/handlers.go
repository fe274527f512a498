package server

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/licethq/licet/pkg/buildinfo"
	"github.com/licethq/licet/pkg/config"
	"github.com/licethq/licet/pkg/logger"
	"github.com/licethq/licet/pkg/safeio"
	"github.com/licethq/licet/pkg/scan"
)

// HealthResponse is returned by the /health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// ScanPathRequest asks the server to scan a directory it can reach.
type ScanPathRequest struct {
	Path string `json:"path" binding:"required"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "licet",
		"version": buildinfo.BinaryVersion,
		"endpoints": gin.H{
			"health":      "GET /health",
			"scan_path":   "POST /scan/path",
			"scan_upload": "POST /scan/upload",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   buildinfo.BinaryVersion,
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleScanPath(c *gin.Context) {
	var req ScanPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	info, err := os.Stat(req.Path)
	if err != nil || !info.IsDir() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Path is not a readable directory"})
		return
	}

	result, err := s.scanner.ScanDirectory(c.Request.Context(), req.Path)
	if err != nil {
		logger.Error("scan failed", logger.String("path", req.Path), logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Scan failed"})
		return
	}

	result.Truncate(s.limits())
	c.JSON(http.StatusOK, result)
}

// handleScanUpload accepts manifest files (or a single zip archive) as
// multipart form data, stages them in a scratch directory, and scans
// the staged tree.
func (s *Server) handleScanUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Server.UploadLimitBytes)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart upload"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	workDir, err := config.GetWorkDir()
	if err != nil {
		workDir = os.TempDir()
	}
	staging, err := os.MkdirTemp(workDir, "upload-*")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stage upload"})
		return
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			logger.Warn("Failed to clean staging directory", logger.Err(err))
		}
	}()

	for _, file := range files {
		if filepath.Ext(file.Filename) == ".zip" {
			if err := s.stageArchive(file, staging); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			continue
		}
		if err := stageFile(c, file, staging); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := s.scanner.ScanDirectory(c.Request.Context(), staging)
	if err != nil {
		logger.Error("upload scan failed", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Scan failed"})
		return
	}

	// The staging directory name is meaningless to the caller.
	result.ProjectName = "upload"
	result.Truncate(s.limits())
	c.JSON(http.StatusOK, result)
}

func (s *Server) limits() scan.Limits {
	return scan.Limits{
		MaxDependencies: s.cfg.Scan.MaxDependencies,
		MaxIssues:       s.cfg.Scan.MaxIssues,
	}
}

func stageFile(c *gin.Context, file *multipart.FileHeader, staging string) error {
	rel, err := safeio.CleanUserPath(file.Filename)
	if err != nil {
		return err
	}
	return c.SaveUploadedFile(file, filepath.Join(staging, filepath.FromSlash(rel)))
}
