package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScanCommand_MissingResume(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "scan")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--resume is required")
}

func TestScanCommand_JobAndJobURLMutuallyExclusive(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	resumeFile := filepath.Join(tmpDir, "resume.txt")
	_ = os.WriteFile(resumeFile, []byte("resume text"), 0644)
	jobFile := filepath.Join(tmpDir, "job.txt")
	_ = os.WriteFile(jobFile, []byte("job text"), 0644)

	cmd := exec.Command(binaryPath, "scan",
		"--resume", resumeFile,
		"--job", jobFile,
		"--job-url", "https://example.com/job")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "mutually exclusive")
}

func TestScanCommand_MissingAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	resumeFile := filepath.Join(tmpDir, "resume.txt")
	_ = os.WriteFile(resumeFile, []byte("resume text"), 0644)

	cmd := exec.Command(binaryPath, "scan", "--resume", resumeFile)

	// Clear environment to ensure no API key
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "GEMINI_API_KEY=") {
			env = append(env, e)
		}
	}
	cmd.Env = env

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "GEMINI_API_KEY environment variable or --api-key flag is required")
}

func TestScanCommand_RejectsLowQualityResume(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	resumeFile := filepath.Join(tmpDir, "resume.txt")
	_ = os.WriteFile(resumeFile, []byte("too short"), 0644)

	// A dummy API key is enough; the quality gate rejects before any call
	cmd := exec.Command(binaryPath, "scan",
		"--resume", resumeFile,
		"--api-key", "dummy-key-for-testing")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "insufficient-length")
}

func TestEnvSeconds(t *testing.T) {
	t.Run("unset yields zero", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), envSeconds("ATS_SCANNER_TEST_UNSET_VAR"))
	})

	t.Run("parses seconds", func(t *testing.T) {
		t.Setenv("ATS_SCANNER_TEST_TIMEOUT", "45")
		assert.Equal(t, 45*time.Second, envSeconds("ATS_SCANNER_TEST_TIMEOUT"))
	})

	t.Run("garbage yields zero", func(t *testing.T) {
		t.Setenv("ATS_SCANNER_TEST_TIMEOUT", "soon")
		assert.Equal(t, time.Duration(0), envSeconds("ATS_SCANNER_TEST_TIMEOUT"))
	})

	t.Run("negative yields zero", func(t *testing.T) {
		t.Setenv("ATS_SCANNER_TEST_TIMEOUT", "-5")
		assert.Equal(t, time.Duration(0), envSeconds("ATS_SCANNER_TEST_TIMEOUT"))
	})
}
