package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alekLukanen/dsutils/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = "Feature 1,Feature 2,Response\n100,,0\n,,1\n50,,2\n,,3\n"

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T) string {
	t.Helper()
	source := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(source, []byte(testCSV), 0o644))
	return source
}

func TestSplitCommand(t *testing.T) {
	source := writeSource(t)
	outDir := filepath.Join(t.TempDir(), "out")

	stdout, _, err := runCommand(t, "split", source, "--ratio", "0.75", "--output-dir", outDir)
	require.NoError(t, err)

	trainPath := filepath.Join(outDir, "training.csv")
	testPath := filepath.Join(outDir, "testing.csv")
	assert.Equal(t, "train\t3\t"+trainPath+"\ntest\t1\t"+testPath+"\n", stdout)
	assert.FileExists(t, trainPath)
	assert.FileExists(t, testPath)
}

func TestSplitCommandNoSave(t *testing.T) {
	source := writeSource(t)

	stdout, _, err := runCommand(t, "split", source, "--ratio", "0.75", "--save-to=false")
	require.NoError(t, err)
	assert.Equal(t, "train\t3\ntest\t1\n", stdout)
}

func TestSplitCommandInvalidRatio(t *testing.T) {
	source := writeSource(t)

	for _, ratio := range []string{"0", "1.0001"} {
		_, stderr, err := runCommand(t, "split", source, "--ratio", ratio)
		require.Error(t, err)
		assert.Equal(t, "Split ratio must be within range (0, 1)", err.Error())
		assert.Contains(t, stderr, "Split ratio must be within range (0, 1)")
	}
}

func TestNullsCommandIgnoresSplitRatio(t *testing.T) {
	source := writeSource(t)
	configPath := filepath.Join(t.TempDir(), "dsutils.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("split:\n  ratio: 2\n"), 0o644))

	stdout, _, err := runCommand(t, "--config", configPath, "nulls", source)
	require.NoError(t, err)
	assert.Equal(t, "Column Name,No. Nulls\nFeature 1,2\nFeature 2,4\nResponse,0\n", stdout)
}

func TestNullsCommand(t *testing.T) {
	source := writeSource(t)

	stdout, stderr, err := runCommand(t, "nulls", source)
	require.NoError(t, err)
	assert.Equal(t, "Column Name,No. Nulls\nFeature 1,2\nFeature 2,4\nResponse,0\n", stdout)
	assert.Contains(t, stderr, "Feature 1: 2 (50.00%) missing values")
}

func TestNullsCommandMissingSource(t *testing.T) {
	_, stderr, err := runCommand(t, "nulls", "non_exist_data.csv")
	require.Error(t, err)
	assert.Contains(t, stderr, "Failed to load data from path: non_exist_data.csv")
}

func TestConfigFlag(t *testing.T) {
	source := writeSource(t)
	configPath := filepath.Join(t.TempDir(), "dsutils.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("split:\n  ratio: 0.75\n  save_to: false\n"), 0o644))

	stdout, _, err := runCommand(t, "--config", configPath, "split", source)
	require.NoError(t, err)
	assert.Equal(t, "train\t3\ntest\t1\n", stdout)

	_, _, err = runCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "split", source)
	assert.Error(t, err)
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	// the package directory has no dsutils.yaml
	_, statErr := os.Stat(config.DefaultConfigFileName)
	require.True(t, os.IsNotExist(statErr))

	cfg, err := (&rootOptions{}).loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Default().Split, cfg.Split)

	_, err = (&rootOptions{configPath: config.DefaultConfigFileName}).loadConfig()
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
}
