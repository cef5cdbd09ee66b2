package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const recordFileExt = ".json"

// Record is one entry of a record file before normalization.
type Record struct {
	File        string
	Ts          string
	MsPlayed    int64
	TrackName   sql.NullString
	ArtistName  sql.NullString
	EpisodeName sql.NullString
	TrackURI    sql.NullString
}

// parseDir reads every record file in dir, in lexical order, and concatenates
// their records.
func parseDir(ctx context.Context, fs afero.Fs, dir string) ([]Record, int, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: listing %s: %v", ErrSetup, dir, err)
	}

	var records []Record
	files := 0
	for _, entry := range entries {
		if entry.IsDir() || !isRecordFile(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, files, err
		}

		fileRecords, err := parseFile(fs, filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, files, err
		}
		records = append(records, fileRecords...)
		files++
	}

	if files == 0 {
		return nil, 0, fmt.Errorf("%w: no %s record files in archive", ErrParse, recordFileExt)
	}
	return records, files, nil
}

// Dot-files are skipped so that the AppleDouble entries macOS adds under
// __MACOSX/ don't break an otherwise valid archive.
func isRecordFile(name string) bool {
	return !strings.HasPrefix(name, ".") && strings.EqualFold(filepath.Ext(name), recordFileExt)
}

func parseFile(fs afero.Fs, path string) ([]Record, error) {
	name := filepath.Base(path)

	f, err := fs.Open(path)
	if err != nil {
		return nil, &ParseError{File: name, Err: err}
	}
	defer f.Close()

	var raws []rawRecord
	if err := json.NewDecoder(f).Decode(&raws); err != nil {
		return nil, &ParseError{File: name, Err: err}
	}

	records := make([]Record, 0, len(raws))
	for i, raw := range raws {
		if raw.Ts == nil {
			return nil, &ParseError{File: name, Err: fmt.Errorf("record %d: missing ts", i)}
		}
		if raw.MsPlayed == nil {
			return nil, &ParseError{File: name, Err: fmt.Errorf("record %d: missing ms_played", i)}
		}
		if *raw.MsPlayed < 0 {
			return nil, &ParseError{File: name, Err: fmt.Errorf("record %d: negative ms_played %d", i, *raw.MsPlayed)}
		}

		records = append(records, Record{
			File:        name,
			Ts:          *raw.Ts,
			MsPlayed:    *raw.MsPlayed,
			TrackName:   nullString(raw.TrackName),
			ArtistName:  nullString(raw.ArtistName),
			EpisodeName: nullString(raw.EpisodeName),
			TrackURI:    nullString(raw.TrackURI),
		})
	}
	return records, nil
}
