package quiz

import (
	"strconv"
	"strings"
)

// ConvertIndex rewrites a table that carries `correct_index` into one that
// carries `correct_answer`, taking the text of the indexed option. Rows left
// with no non-blank cell are dropped whether or not the table is converted.
// rows are not modified; the returned rows are copies.
func ConvertIndex(headers []string, rows []Row) ([]string, []Row) {
	schema := NewSchema(headers)
	outHeaders := append([]string(nil), headers...)
	convert := schema.Has(colCorrectIndex)

	optionColumn := func(i int) string { return "option_" + strconv.Itoa(i) }
	if convert {
		if langs := LanguageCandidates(headers); len(langs) > 0 {
			lang := langs[0]
			optionColumn = func(i int) string { return "option_" + lang + "_" + strconv.Itoa(i) }
		}
		if !schema.Has(colCorrectAnswer) {
			outHeaders = append(outHeaders, colCorrectAnswer)
		}
		kept := outHeaders[:0]
		for _, h := range outHeaders {
			if h != colCorrectIndex {
				kept = append(kept, h)
			}
		}
		outHeaders = kept
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		nr := r.clone()
		if convert {
			idx := strings.TrimSpace(r[colCorrectIndex])
			switch i, err := strconv.Atoi(idx); {
			case idx == "":
				nr[colCorrectAnswer] = ""
			case err != nil:
				nr[colCorrectAnswer] = idx
			default:
				nr[colCorrectAnswer] = r[optionColumn(i)]
			}
			delete(nr, colCorrectIndex)
		}
		if nr.Blank() {
			continue
		}
		out = append(out, nr)
	}
	return outHeaders, out
}
