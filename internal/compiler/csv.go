package compiler

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/agatan/yoin/internal/dict"
)

// ParseMorphCSV parses the morph dictionary CSV format:
// "surface,left_id,right_id,weight,feature1,feature2,...". name is used
// only to annotate BuildError. The returned morphs are in file order,
// not yet sorted by surface: build.go sorts them before handing them to
// fst.Builder.
func ParseMorphCSV(name string, r io.Reader) ([]dict.Morph, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var morphs []dict.Morph
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &BuildError{File: name, Err: err}
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 4 {
			return nil, &BuildError{File: name, Line: line, Err: fmt.Errorf("expected at least 4 fields (surface,left_id,right_id,weight[,features...]), got %d", len(rec))}
		}
		left, err := strconv.ParseUint(rec[1], 10, 16)
		if err != nil {
			return nil, &BuildError{File: name, Line: line, Err: fmt.Errorf("left_id: %w", err)}
		}
		right, err := strconv.ParseUint(rec[2], 10, 16)
		if err != nil {
			return nil, &BuildError{File: name, Line: line, Err: fmt.Errorf("right_id: %w", err)}
		}
		weight, err := strconv.ParseInt(rec[3], 10, 16)
		if err != nil {
			return nil, &BuildError{File: name, Line: line, Err: fmt.Errorf("weight: %w", err)}
		}
		morphs = append(morphs, dict.Morph{
			Surface:  rec[0],
			LeftID:   uint16(left),
			RightID:  uint16(right),
			Weight:   int16(weight),
			Contents: strings.Join(rec[4:], ","),
		})
	}
	return morphs, nil
}
