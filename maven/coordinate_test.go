package maven

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("com.google.inject:guice:7.0.0")
	require.NoError(t, err)
	assert.Equal(t, Coordinate{GroupID: "com.google.inject", ArtifactID: "guice", Version: "7.0.0"}, c)

	c, err = ParseCoordinate("com.google.inject:guice:sources:7.0.0")
	require.NoError(t, err)
	assert.Equal(t, Coordinate{GroupID: "com.google.inject", ArtifactID: "guice", Version: "7.0.0", Classifier: "sources"}, c)
}

func TestParseCoordinateInvalid(t *testing.T) {
	for _, coord := range []string{"", "guice", "com.google.inject:guice", "a:b:c:d:e"} {
		_, err := ParseCoordinate(coord)
		assert.Error(t, err, "coordinate %q", coord)
	}
}

func TestCoordinateString(t *testing.T) {
	c := Coordinate{GroupID: "org.slf4j", ArtifactID: "slf4j-api", Version: "2.0.9"}
	assert.Equal(t, "org.slf4j:slf4j-api:2.0.9", c.String())

	c.Classifier = "sources"
	assert.Equal(t, "org.slf4j:slf4j-api:sources:2.0.9", c.String())
}

func TestCoordinateJarName(t *testing.T) {
	c := Coordinate{GroupID: "org.slf4j", ArtifactID: "slf4j-api", Version: "2.0.9"}
	assert.Equal(t, "slf4j-api-2.0.9.jar", c.JarName())

	c.Classifier = "sources"
	assert.Equal(t, "slf4j-api-2.0.9-sources.jar", c.JarName())
}
