package maven

import (
	"fmt"
	"strings"
)

// Coordinate identifies an artifact in a Maven repository.
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
	Classifier string
}

// ParseCoordinate accepts groupId:artifactId:version or
// groupId:artifactId:classifier:version.
func ParseCoordinate(coord string) (Coordinate, error) {
	parts := strings.Split(coord, ":")
	switch len(parts) {
	case 3:
		return Coordinate{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}, nil
	case 4:
		return Coordinate{GroupID: parts[0], ArtifactID: parts[1], Classifier: parts[2], Version: parts[3]}, nil
	default:
		return Coordinate{}, fmt.Errorf("invalid Maven coordinate: %s (expected groupId:artifactId:version or groupId:artifactId:classifier:version)", coord)
	}
}

func (c Coordinate) String() string {
	if c.Classifier != "" {
		return c.GroupID + ":" + c.ArtifactID + ":" + c.Classifier + ":" + c.Version
	}
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// JarName returns the artifact's jar file name.
func (c Coordinate) JarName() string {
	if c.Classifier != "" {
		return fmt.Sprintf("%s-%s-%s.jar", c.ArtifactID, c.Version, c.Classifier)
	}
	return fmt.Sprintf("%s-%s.jar", c.ArtifactID, c.Version)
}
