// Copyright 2024 The OSS Rebuild Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package uri parses the index target descriptors accepted on the command line.
package uri

import (
	"path/filepath"
	re "regexp"
	"strings"

	"github.com/pkg/errors"
)

// Kind identifies how an index target is reached.
type Kind int

const (
	// Local is a directory on this machine.
	Local Kind = iota
	// Rsync is a remote path reached through rsync.
	Rsync
	// S3 is an S3 bucket and key prefix.
	S3
	// GCS is a Google Cloud Storage bucket and object prefix.
	GCS
	// Unsupported is a remote target whose scheme is not recognized.
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case Local:
		return "local"
	case Rsync:
		return "rsync"
	case S3:
		return "s3"
	case GCS:
		return "gs"
	default:
		return "unsupported"
	}
}

// Destination is a parsed index target.
type Destination struct {
	Kind Kind
	// Scheme is the scheme as written, if any.
	Scheme string
	// Path is the absolute directory for Local and the rsync destination for Rsync.
	Path      string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
}

// Remote reports whether the index must be built in a scratch directory.
func (d Destination) Remote() bool {
	return d.Kind != Local
}

// String renders the destination without credentials.
func (d Destination) String() string {
	switch d.Kind {
	case Local, Rsync:
		return d.Path
	case S3, GCS:
		return d.Kind.String() + "://" + strings.TrimSuffix(d.Bucket+"/"+d.Prefix, "/")
	default:
		return d.Scheme + "://..."
	}
}

var (
	schemeRE = re.MustCompile(`^([A-Za-z][A-Za-z0-9+.-]*)://(.*)$`)
	// NOTE: Secret keys may contain '/' so the credential split is on the last '@'.
	s3RE = re.MustCompile(`^(?:([^:@/]+):(.+)@)?([a-z0-9][a-z0-9.-]*[a-z0-9])(?:/(.*))?$`)
	gsRE = re.MustCompile(`^([a-z0-9][a-z0-9._-]*[a-z0-9])(?:/(.*))?$`)
	// host:path, where the host contains no '/'.
	scpRE = re.MustCompile(`^[^/:]+:.*$`)
)

var errBadDestination = errors.New("invalid destination")

// ParseDestination parses a target given as a local path, "host:path",
// "rsync://host:path", "s3://[key:secret@]bucket[/prefix]" or "gs://bucket[/prefix]".
func ParseDestination(target string) (Destination, error) {
	if target == "" {
		return Destination{}, errors.Wrap(errBadDestination, "empty target")
	}
	if m := schemeRE.FindStringSubmatch(target); m != nil {
		scheme, rest := m[1], m[2]
		switch strings.ToLower(scheme) {
		case "rsync":
			if rest == "" {
				return Destination{}, errors.Wrap(errBadDestination, "rsync target has no path")
			}
			return Destination{Kind: Rsync, Scheme: scheme, Path: rest}, nil
		case "s3":
			sm := s3RE.FindStringSubmatch(rest)
			if sm == nil {
				return Destination{}, errors.Wrapf(errBadDestination, "expected s3://[key:secret@]bucket[/prefix], got %q", redact(target))
			}
			return Destination{
				Kind:      S3,
				Scheme:    scheme,
				AccessKey: sm[1],
				SecretKey: sm[2],
				Bucket:    sm[3],
				Prefix:    strings.Trim(sm[4], "/"),
			}, nil
		case "gs":
			gm := gsRE.FindStringSubmatch(rest)
			if gm == nil {
				return Destination{}, errors.Wrapf(errBadDestination, "expected gs://bucket[/prefix], got %q", target)
			}
			return Destination{Kind: GCS, Scheme: scheme, Bucket: gm[1], Prefix: strings.Trim(gm[2], "/")}, nil
		case "file":
			return local(rest)
		default:
			return Destination{Kind: Unsupported, Scheme: scheme}, nil
		}
	}
	if scpRE.MatchString(target) && !filepath.IsAbs(target) {
		return Destination{Kind: Rsync, Path: target}, nil
	}
	return local(target)
}

func local(p string) (Destination, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return Destination{}, errors.Wrapf(err, "resolving %q", p)
	}
	return Destination{Kind: Local, Path: abs}, nil
}

// redact hides any credentials embedded before the last '@'.
func redact(target string) string {
	i := strings.LastIndex(target, "@")
	if i == -1 {
		return target
	}
	scheme, _, _ := strings.Cut(target, "://")
	return scheme + "://<redacted>" + target[i:]
}
