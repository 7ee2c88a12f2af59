package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	stdout, stderr, stdin := new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)

	args := []string{"-email", "Ana@Example.com", "-first", "Ana", "-last", "Diaz", "-password", "correct-horse", "-db", dbPath}
	require.NoError(t, run(args, stdin, stdout, stderr))

	assert.Contains(t, stdout.String(), "User ana@example.com created successfully")
	assert.FileExists(t, dbPath)
}

func TestRun_DuplicateUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	stdout, stderr, stdin := new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)

	args := []string{"-email", "ana@example.com", "-first", "Ana", "-last", "Diaz", "-password", "correct-horse", "-db", dbPath}
	require.NoError(t, run(args, stdin, stdout, stderr), "first run should succeed")

	err := run(args, stdin, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_MissingFlags(t *testing.T) {
	stdout, stderr, stdin := new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)

	err := run([]string{"-email", "ana@example.com", "-password", "correct-horse"}, stdin, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags: first, last")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRun_InteractivePassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	stdin := bytes.NewBufferString("interactive-secret\n")

	args := []string{"-email", "bruno@example.com", "-first", "Bruno", "-last", "Silva", "-db", dbPath}
	require.NoError(t, run(args, stdin, stdout, stderr))

	assert.Contains(t, stdout.String(), "Password: ")
	assert.Contains(t, stdout.String(), "User bruno@example.com created successfully")
}

func TestRun_PasswordRules(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		wantErr string
	}{
		{name: "empty", stdin: "\n", wantErr: "password cannot be empty"},
		{name: "too short", stdin: "short\n", wantErr: "at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
			args := []string{"-email", "carla@example.com", "-first", "Carla", "-last", "Ruiz", "-db", filepath.Join(t.TempDir(), "ledger.db")}

			err := run(args, bytes.NewBufferString(tt.stdin), stdout, stderr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRun_InvalidFlag(t *testing.T) {
	stdout, stderr, stdin := new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)

	err := run([]string{"-invalid"}, stdin, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined")
}
