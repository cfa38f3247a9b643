package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/devsapp/model-packager/pkg/config"
	"github.com/devsapp/model-packager/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Build create the model package at outputPath, a gzip compressed tar with
// the model dir content under model/, an optional requirements.txt and the
// generated inference.py. Overwrites outputPath if it already exists.
func Build(modelDir, outputPath, requirementsPath string) error {
	logrus.Infof("creating model package: %s", outputPath)
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create archive %s: %w", outputPath, err)
	}
	defer out.Close()
	gw := gzip.NewWriter(out)
	tw := tar.NewWriter(gw)

	if utils.FileExists(modelDir) {
		logrus.Infof("adding model files from: %s", modelDir)
		if err := addDir(tw, modelDir, config.ModelArchivePrefix); err != nil {
			return fmt.Errorf("add model dir %s: %w", modelDir, err)
		}
	}

	if requirementsPath != "" && utils.FileExists(requirementsPath) {
		logrus.Infof("adding requirements: %s", requirementsPath)
		if err := addFile(tw, requirementsPath, config.RequirementsFileName); err != nil {
			return fmt.Errorf("add requirements: %w", err)
		}
	}

	if err := addInferenceScript(tw); err != nil {
		return fmt.Errorf("add inference script: %w", err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar writer: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("close gzip writer: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	logrus.Infof("model package created: %s", outputPath)
	return nil
}

// addInferenceScript write the script to a temp file, add it to the archive
// and remove the temp file whether the add succeeded or not.
func addInferenceScript(tw *tar.Writer) error {
	tmp := filepath.Join(os.TempDir(), "inference-"+utils.RandStr(8)+".py")
	if err := os.WriteFile(tmp, []byte(InferenceScript()), 0644); err != nil {
		return err
	}
	defer os.Remove(tmp)
	return addFile(tw, tmp, config.InferenceScriptName)
}

// addDir walk dir and add every entry under the given archive prefix,
// keeping the directory structure.
func addDir(tw *tar.Writer, dir, prefix string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := prefix
		if rel != "." {
			name = prefix + "/" + filepath.ToSlash(rel)
		}
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = name
		if info.IsDir() {
			header.Name += "/"
		}
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		_, err = io.Copy(tw, file)
		return err
	})
}

func addFile(tw *tar.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = name
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(tw, file)
	return err
}
