package maven

import (
	"encoding/xml"
	"strings"

	errs "github.com/matzehuels/libsgen/pkg/errors"
)

// POM is the subset of a Maven POM document that libsgen reads. Values are
// raw: placeholders are not interpolated and nothing is inherited.
type POM struct {
	XMLName              xml.Name        `xml:"project"`
	GroupID              string          `xml:"groupId"`
	ArtifactID           string          `xml:"artifactId"`
	Version              string          `xml:"version"`
	Packaging            string          `xml:"packaging"`
	Name                 string          `xml:"name"`
	Parent               *Parent         `xml:"parent"`
	Properties           Properties      `xml:"properties"`
	Build                pomBuild        `xml:"build"`
	Dependencies         []pomDependency `xml:"dependencies>dependency"`
	DependencyManagement []pomDependency `xml:"dependencyManagement>dependencies>dependency"`
}

// Parent is the <parent> element of a POM.
type Parent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	// RelativePath is nil when the element is absent, which means the
	// default "../pom.xml". An empty <relativePath/> disables the local lookup.
	RelativePath *string `xml:"relativePath"`
}

// LocalPath returns the relative path to look for the parent POM, or "" if
// the local lookup is disabled.
func (p *Parent) LocalPath() string {
	if p.RelativePath == nil {
		return "../pom.xml"
	}
	return strings.TrimSpace(*p.RelativePath)
}

type pomBuild struct {
	FinalName string `xml:"finalName"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Type       string `xml:"type"`
	Classifier string `xml:"classifier"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}

// Properties holds the free-form <properties> element, keyed by element name.
type Properties map[string]string

// UnmarshalXML collects every child element of <properties> as a key/value pair.
func (p *Properties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	props := Properties{}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var v string
			if err := d.DecodeElement(&v, &t); err != nil {
				return err
			}
			props[t.Name.Local] = strings.TrimSpace(v)
		case xml.EndElement:
			*p = props
			return nil
		}
	}
}

// ParsePOM decodes a POM document.
func ParsePOM(data []byte) (*POM, error) {
	var pom POM
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPOM, err, "cannot parse POM")
	}
	trimPOM(&pom)
	return &pom, nil
}

func trimPOM(p *POM) {
	for _, s := range []*string{&p.GroupID, &p.ArtifactID, &p.Version, &p.Packaging, &p.Name, &p.Build.FinalName} {
		*s = strings.TrimSpace(*s)
	}
	if p.Parent != nil {
		p.Parent.GroupID = strings.TrimSpace(p.Parent.GroupID)
		p.Parent.ArtifactID = strings.TrimSpace(p.Parent.ArtifactID)
		p.Parent.Version = strings.TrimSpace(p.Parent.Version)
	}
	for _, list := range [][]pomDependency{p.Dependencies, p.DependencyManagement} {
		for i := range list {
			d := &list[i]
			for _, s := range []*string{&d.GroupID, &d.ArtifactID, &d.Version, &d.Type, &d.Classifier, &d.Scope, &d.Optional} {
				*s = strings.TrimSpace(*s)
			}
		}
	}
}
