package maven

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultRepoURL = "https://repo1.maven.org/maven2"
	EnvRepoURL     = "MAVEN_REPO_URL"
)

// maxParentDepth bounds parent POM resolution so a cyclic parent
// chain cannot recurse forever.
const maxParentDepth = 16

type Fetcher struct {
	RepoURL    string
	httpClient *http.Client
}

func NewFetcher() *Fetcher {
	repoURL := os.Getenv(EnvRepoURL)
	if repoURL == "" {
		repoURL = DefaultRepoURL
	}
	repoURL = strings.TrimSuffix(repoURL, "/")

	return &Fetcher{
		RepoURL:    repoURL,
		httpClient: &http.Client{},
	}
}

// FetchPOM downloads and decodes the POM for an artifact, resolving
// parent POMs and interpolating version properties into the
// dependency lists.
func (f *Fetcher) FetchPOM(c Coordinate) (*Project, error) {
	return f.fetchPOM(c, 0)
}

func (f *Fetcher) fetchPOM(c Coordinate, depth int) (*Project, error) {
	url := f.pomURL(c)
	resp, err := f.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch POM: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch POM: HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read POM: %w", err)
	}

	var project Project
	if err := xml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("parse POM: %w", err)
	}

	if err := f.resolveParent(&project, depth); err != nil {
		return nil, err
	}

	f.interpolateProperties(&project)

	return &project, nil
}

func (f *Fetcher) resolveParent(project *Project, depth int) error {
	if project.Parent == nil {
		return nil
	}
	if depth >= maxParentDepth {
		return fmt.Errorf("parent chain deeper than %d POMs", maxParentDepth)
	}

	parent, err := f.fetchPOM(Coordinate{
		GroupID:    project.Parent.GroupID,
		ArtifactID: project.Parent.ArtifactID,
		Version:    project.Parent.Version,
	}, depth+1)
	if err != nil {
		return fmt.Errorf("fetch parent POM: %w", err)
	}

	if project.GroupID == "" {
		project.GroupID = parent.GroupID
	}
	if project.Version == "" {
		project.Version = parent.Version
	}

	if project.Properties == nil {
		project.Properties = &Properties{Entries: make(map[string]string)}
	}
	if parent.Properties != nil {
		for k, v := range parent.Properties.Entries {
			if _, exists := project.Properties.Entries[k]; !exists {
				project.Properties.Entries[k] = v
			}
		}
	}

	if project.DependencyManagement == nil && parent.DependencyManagement != nil {
		project.DependencyManagement = parent.DependencyManagement
	} else if project.DependencyManagement != nil && parent.DependencyManagement != nil {
		existingDeps := make(map[string]bool)
		for _, d := range project.DependencyManagement.Dependencies {
			existingDeps[d.GroupID+":"+d.ArtifactID] = true
		}
		for _, d := range parent.DependencyManagement.Dependencies {
			if !existingDeps[d.GroupID+":"+d.ArtifactID] {
				project.DependencyManagement.Dependencies = append(project.DependencyManagement.Dependencies, d)
			}
		}
	}

	return nil
}

func (f *Fetcher) interpolateProperties(project *Project) {
	props := make(map[string]string)
	props["project.groupId"] = project.GroupID
	props["project.artifactId"] = project.ArtifactID
	props["project.version"] = project.Version
	props["pom.groupId"] = project.GroupID
	props["pom.artifactId"] = project.ArtifactID
	props["pom.version"] = project.Version

	if project.Properties != nil {
		for k, v := range project.Properties.Entries {
			props[k] = v
		}
	}

	interpolate := func(s string) string {
		for k, v := range props {
			s = strings.ReplaceAll(s, "${"+k+"}", v)
		}
		return s
	}

	for i := range project.Dependencies {
		project.Dependencies[i].GroupID = interpolate(project.Dependencies[i].GroupID)
		project.Dependencies[i].ArtifactID = interpolate(project.Dependencies[i].ArtifactID)
		project.Dependencies[i].Version = interpolate(project.Dependencies[i].Version)
	}

	if project.DependencyManagement != nil {
		for i := range project.DependencyManagement.Dependencies {
			project.DependencyManagement.Dependencies[i].GroupID = interpolate(project.DependencyManagement.Dependencies[i].GroupID)
			project.DependencyManagement.Dependencies[i].ArtifactID = interpolate(project.DependencyManagement.Dependencies[i].ArtifactID)
			project.DependencyManagement.Dependencies[i].Version = interpolate(project.DependencyManagement.Dependencies[i].Version)
		}
	}
}

func (f *Fetcher) pomURL(c Coordinate) string {
	groupPath := strings.ReplaceAll(c.GroupID, ".", "/")
	return fmt.Sprintf("%s/%s/%s/%s/%s-%s.pom", f.RepoURL, groupPath, c.ArtifactID, c.Version, c.ArtifactID, c.Version)
}

func (f *Fetcher) JarURL(c Coordinate) string {
	groupPath := strings.ReplaceAll(c.GroupID, ".", "/")
	return fmt.Sprintf("%s/%s/%s/%s/%s", f.RepoURL, groupPath, c.ArtifactID, c.Version, c.JarName())
}

// DownloadJar fetches the artifact's jar into destDir and returns the
// path of the written file.
func (f *Fetcher) DownloadJar(c Coordinate, destDir string) (string, error) {
	url := f.JarURL(c)
	resp, err := f.httpClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("download JAR: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download JAR: HTTP %d for %s", resp.StatusCode, url)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	destPath := filepath.Join(destDir, c.JarName())
	file, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("write file: %w", err)
	}

	return destPath, nil
}
