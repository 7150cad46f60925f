// Package manifest produces the libraries file: the JSON list of a
// project's runtime libraries and where to download them.
//
// # Generation
//
// [Generator.Generate] runs the pipeline:
//
//  1. Walk the dependency tree ([deps.Walker])
//  2. Drop dependencies rejected by the pattern filter
//  3. Drop dependencies rejected by the scope filter
//  4. Turn each survivor into a [Library] whose URL comes from a [URLResolver]
//
// # File Format
//
//	{
//	  "libs": [
//	    {
//	      "name": "com.google.guava:guava:33.0.0-jre",
//	      "url": "https://repo1.maven.org/maven2/com/google/guava/guava/33.0.0-jre/guava-33.0.0-jre.jar"
//	    }
//	  ]
//	}
//
// [Write] replaces any existing file. [Diff] compares two encodings for
// dry runs.
//
// [deps.Walker]: github.com/matzehuels/libsgen/pkg/deps.Walker
package manifest
