package maven

import "encoding/xml"

// Project is the part of a POM that matters for inspecting an
// artifact: identity, parent, dependencies and descriptive metadata.
// Build and reporting sections are not decoded.
type Project struct {
	XMLName              xml.Name              `xml:"project"`
	ModelVersion         string                `xml:"modelVersion"`
	GroupID              string                `xml:"groupId"`
	ArtifactID           string                `xml:"artifactId"`
	Version              string                `xml:"version"`
	Packaging            string                `xml:"packaging"`
	Name                 string                `xml:"name"`
	Description          string                `xml:"description"`
	URL                  string                `xml:"url"`
	Parent               *Parent               `xml:"parent"`
	Properties           *Properties           `xml:"properties"`
	Dependencies         []Dependency          `xml:"dependencies>dependency"`
	DependencyManagement *DependencyManagement `xml:"dependencyManagement"`
	Licenses             []License             `xml:"licenses>license"`
	Organization         *Organization         `xml:"organization"`
	SCM                  *SCM                  `xml:"scm"`
}

type Parent struct {
	GroupID      string `xml:"groupId"`
	ArtifactID   string `xml:"artifactId"`
	Version      string `xml:"version"`
	RelativePath string `xml:"relativePath"`
}

// Properties holds the free-form <properties> block, whose element
// names are the property keys.
type Properties struct {
	Entries map[string]string
}

func (p *Properties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.Entries = make(map[string]string)
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			p.Entries[t.Name.Local] = value
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

type Dependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Type       string `xml:"type"`
	Classifier string `xml:"classifier"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}

type DependencyManagement struct {
	Dependencies []Dependency `xml:"dependencies>dependency"`
}

type License struct {
	Name         string `xml:"name"`
	URL          string `xml:"url"`
	Distribution string `xml:"distribution"`
	Comments     string `xml:"comments"`
}

type Organization struct {
	Name string `xml:"name"`
	URL  string `xml:"url"`
}

type SCM struct {
	Connection          string `xml:"connection"`
	DeveloperConnection string `xml:"developerConnection"`
	Tag                 string `xml:"tag"`
	URL                 string `xml:"url"`
}
