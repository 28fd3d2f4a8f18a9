package version

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbxedit-dev/pbxedit/internal/parser"
)

const resolvedV2 = `{
  "pins": [
    {
      "identity": "swift-argument-parser",
      "kind": "remoteSourceControl",
      "location": "https://github.com/apple/swift-argument-parser",
      "state": {
        "revision": "c8ed701b513cf5177118a175d85fbbbcd707ab41",
        "version": "1.3.0"
      }
    },
    {
      "identity": "swift-log",
      "kind": "remoteSourceControl",
      "location": "https://github.com/apple/swift-log.git",
      "state": {
        "revision": "e97a6fcb1ab07462881ac165fdbb37f067e205d5",
        "version": "1.5.4"
      }
    }
  ],
  "version": 2
}`

const resolvedV1 = `{
  "object": {
    "pins": [
      {
        "package": "SwiftLog",
        "repositoryURL": "https://github.com/apple/swift-log.git",
        "state": {
          "branch": null,
          "revision": "e97a6fcb1ab07462881ac165fdbb37f067e205d5",
          "version": "1.4.2"
        }
      }
    ]
  },
  "version": 1
}`

func writeResolved(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Package.resolved")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFromResolvedV2(t *testing.T) {
	path := writeResolved(t, resolvedV2)

	pin, err := FromResolved(path, "swift-log")
	require.NoError(t, err)
	assert.Equal(t, "1.5.4", pin.Version)
	assert.Equal(t, "e97a6fcb1ab07462881ac165fdbb37f067e205d5", pin.Revision)
	assert.Equal(t, "resolved", pin.Source)
}

func TestFromResolvedV1(t *testing.T) {
	path := writeResolved(t, resolvedV1)

	pin, err := FromResolved(path, "swiftlog")
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", pin.Version)
}

func TestFromResolvedMissingPackage(t *testing.T) {
	path := writeResolved(t, resolvedV2)

	_, err := FromResolved(path, "no-such-dep")
	assert.ErrorContains(t, err, "not pinned")
}

func TestFromResolvedRejectsBadJSON(t *testing.T) {
	path := writeResolved(t, "{ pins: [")

	_, err := FromResolved(path, "swift-log")
	assert.ErrorContains(t, err, "not valid JSON")
}

const manifestWithPackageRef = `// !$*UTF8*$!
{
	archiveVersion = 1;
	objectVersion = 56;
	objects = {
		AAAAAAAAAAAAAAAAAAAAAAA1 /* Project object */ = {
			isa = PBXProject;
			mainGroup = AAAAAAAAAAAAAAAAAAAAAAA2;
		};
		AAAAAAAAAAAAAAAAAAAAAAA2 = {
			isa = PBXGroup;
			children = (
			);
			sourceTree = "<group>";
		};
		AAAAAAAAAAAAAAAAAAAAAAA3 /* XCRemoteSwiftPackageReference "swift-log" */ = {
			isa = XCRemoteSwiftPackageReference;
			repositoryURL = "https://github.com/apple/swift-log.git";
			requirement = {
				kind = upToNextMajorVersion;
				minimumVersion = 1.5.0;
			};
		};
	};
	rootObject = AAAAAAAAAAAAAAAAAAAAAAA1;
}
`

func TestFromManifest(t *testing.T) {
	doc, err := parser.Parse(manifestWithPackageRef)
	require.NoError(t, err)

	pin, err := FromManifest(doc, "swift-log")
	require.NoError(t, err)
	assert.Equal(t, "1.5.0", pin.Version)
	assert.Equal(t, "manifest", pin.Source)
}

func TestLookupPrefersResolved(t *testing.T) {
	doc, err := parser.Parse(manifestWithPackageRef)
	require.NoError(t, err)
	path := writeResolved(t, resolvedV2)

	pin, err := Lookup(doc, path, "swift-log")
	require.NoError(t, err)
	assert.Equal(t, "resolved", pin.Source)
	assert.Equal(t, "1.5.4", pin.Version)
}

func TestLookupFallsBackToManifest(t *testing.T) {
	doc, err := parser.Parse(manifestWithPackageRef)
	require.NoError(t, err)

	pin, err := Lookup(doc, filepath.Join(t.TempDir(), "absent.resolved"), "swift-log")
	require.NoError(t, err)
	assert.Equal(t, "manifest", pin.Source)
}
