// Package maven provides an HTTP client for Maven repositories.
//
// # Overview
//
// This package downloads POM files from any repository that uses the
// standard Maven layout and queries Maven Central search
// (https://search.maven.org) for the latest version of an artifact.
//
// # Usage
//
//	client := maven.NewClient(nil)
//
//	version, err := client.LatestVersion(ctx, "com.google.guava", "guava")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pom, err := client.FetchPOM(ctx, maven.CentralURL, "com.google.guava", "guava", version)
//
// # Repository Layout
//
// [ArtifactPath] maps coordinates to repository paths: dots in the groupId
// become directories, followed by artifactId, version and the file name
// "artifactId-version.ext". The same layout is used for local repositories.
//
// # Coordinates
//
// [ParseCoordinate] accepts "groupId:artifactId" and
// "groupId:artifactId:version".
package maven
