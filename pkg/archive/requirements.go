package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devsapp/model-packager/pkg/config"
	"github.com/sirupsen/logrus"
)

// WriteRequirements write the package names one per line to requirements.txt
// inside dir and return the full path. The caller owns dir, usually a temp
// dir removed at the end of the run.
func WriteRequirements(dir string, packages []string) (string, error) {
	fn := filepath.Join(dir, config.RequirementsFileName)
	content := strings.Join(packages, "\n") + "\n"
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write requirements %s: %w", fn, err)
	}
	logrus.Infof("created requirements.txt with packages: %v", packages)
	return fn, nil
}
