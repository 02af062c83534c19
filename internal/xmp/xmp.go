// Package xmp reads the Adobe XMP sidecar files exported next to each
// rendered video. Only two things matter to us: the composition title
// and the comment text of the marker at the frame we care about.
package xmp

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Sidecar holds the fields extracted from one sidecar file. HasMarker
// is false when no marker exists at the requested frame position.
type Sidecar struct {
	Title     string
	Comment   string
	HasMarker bool
}

// Reader parses sidecar files from disk.
type Reader struct{}

// markerEntry matches one rdf:li under xmpDM:markers. Tags use local
// names so namespace prefixes in the file don't matter.
type markerEntry struct {
	StartTime string `xml:"startTime"`
	Comment   string `xml:"comment"`
}

// Read extracts the composition title and the first matching marker
// comment from the sidecar at path. Theme previews keep their marker at
// frame 0, clips at frame 1 or later; wantFrameZero selects which kind
// of marker to return. Markers with an unparsable start time are
// skipped.
func (Reader) Read(path string, wantFrameZero bool) (Sidecar, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sidecar{}, fmt.Errorf("open sidecar: %w", err)
	}
	defer f.Close()

	var (
		sc            Sidecar
		decoder       = xml.NewDecoder(f)
		inTitle       int
		markerDepth   int
		titleCaptured bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Sidecar{}, fmt.Errorf("parse sidecar: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "title":
				if !titleCaptured {
					inTitle++
				}
			case "markers":
				markerDepth++
			case "li":
				if inTitle > 0 && !titleCaptured {
					var text string
					if err := decoder.DecodeElement(&text, &t); err == nil {
						sc.Title = strings.TrimSpace(text)
						titleCaptured = true
					}
					continue
				}
				if markerDepth > 0 && !sc.HasMarker {
					var m markerEntry
					if err := decoder.DecodeElement(&m, &t); err != nil {
						continue
					}
					frame, err := strconv.Atoi(strings.TrimSpace(m.StartTime))
					if err != nil {
						continue
					}
					if (wantFrameZero && frame == 0) || (!wantFrameZero && frame > 0) {
						sc.Comment = m.Comment
						sc.HasMarker = true
					}
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "title":
				if inTitle > 0 {
					inTitle--
				}
			case "markers":
				markerDepth--
			}
		}
	}

	return sc, nil
}
