// Package maven builds dependency projects from Maven POM files.
//
// # Overview
//
// [LoadProject] reads a local pom.xml. [ProjectBuilder] resolves artifacts
// into projects by looking up their POMs, first in a [LocalRepository] and
// then in each remote [Repository] in order. Both produce a [Project], the
// effective model of the POM, which implements [deps.Project] so it can be
// handed to a [deps.Walker].
//
// # Effective Model
//
// Building a [Project] from a [POM]:
//
//   - groupId and version default to the values in <parent>
//   - the parent model (when it can be found) contributes properties,
//     dependencyManagement and dependencies
//   - BOMs imported with scope "import" contribute dependencyManagement
//   - ${...} placeholders are replaced from properties, project.*, pom.*,
//     project.parent.* and env.*; unknown placeholders stay as written
//   - a missing dependency version or scope is taken from dependencyManagement
//   - scope defaults to "compile", type to "jar", packaging to "jar"
//
// Only dependencies with a concrete version become artifacts, see
// [Project.Artifacts].
//
// [deps.Project]: github.com/matzehuels/libsgen/pkg/deps.Project
// [deps.Walker]: github.com/matzehuels/libsgen/pkg/deps.Walker
package maven
