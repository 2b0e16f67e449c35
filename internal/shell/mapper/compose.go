package mapper

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/podshift/podshift/internal/core/compose"
	"github.com/podshift/podshift/internal/core/domain"
	"github.com/podshift/podshift/internal/core/graph"
)

// composeFileNames are the conventional compose file names, probed in order.
var composeFileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// analyzeComposeFiles parses every discovered compose file into relationship
// facts and report sections. A file that fails to parse is logged and
// skipped; one bad file must not abort the whole analysis.
func (m *Mapper) analyzeComposeFiles() ([]graph.Fact, map[string]domain.ComposeProject) {
	files := discoverComposeFiles(m.config.ComposeFiles, m.config.ComposeSearchPaths)

	var facts []graph.Fact
	projects := map[string]domain.ComposeProject{}

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			m.logger.Warn("failed to read compose file", "path", path, "error", err)
			continue
		}

		spec, err := compose.ParseComposeSpec(string(content))
		if err != nil {
			m.logger.Warn("failed to parse compose file", "path", path, "error", err)
			continue
		}

		m.logger.Info("analyzed compose file", "path", path, "services", len(spec.Services))
		facts = append(facts, compose.ServiceFacts(spec)...)
		projects[path] = composeProject(path, spec)
	}

	return facts, projects
}

// discoverComposeFiles resolves the explicit file list plus conventional
// file names under each search path. Paths are deduplicated; files that do
// not exist are dropped.
func discoverComposeFiles(explicit, searchPaths []string) []string {
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, path := range explicit {
		add(path)
	}
	for _, dir := range searchPaths {
		for _, name := range composeFileNames {
			add(filepath.Join(dir, name))
		}
	}

	return files
}

// composeProject converts a parsed spec into its report section.
func composeProject(path string, spec *compose.ParsedSpec) domain.ComposeProject {
	services := make(map[string]domain.ComposeService, len(spec.Services))
	for _, svc := range spec.Services {
		services[svc.Name] = domain.ComposeService{
			DependsOn:   emptyWhenNil(svc.DependsOn),
			Links:       emptyWhenNil(svc.Links),
			VolumesFrom: emptyWhenNil(svc.VolumesFrom),
			Networks:    sortedCopy(svc.Networks),
		}
	}

	return domain.ComposeProject{
		FilePath: path,
		Services: services,
	}
}

func emptyWhenNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func sortedCopy(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
