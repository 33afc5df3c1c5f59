package sentiplot

import "maps"

// Melt unpivots f from wide to long form.
//
// Every row yields one LongRecord per value field, carrying the row's
// idFields as labels. Records are grouped by value field in valueFields order
// and follow row order within a group, so the result holds
// f.Len()*len(valueFields) records. Value fields must be float columns; id
// fields may be of either kind.
func Melt(f *Frame, idFields, valueFields []string) ([]LongRecord, error) {
	ids := make(map[string][]string, len(idFields))
	for _, name := range idFields {
		if !f.Has(name) {
			return nil, &MissingFieldError{Field: name}
		}
		vals := make([]string, f.Len())
		for i := range vals {
			v, err := f.Format(name, i)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		ids[name] = vals
	}

	values := make([][]float64, len(valueFields))
	for j, name := range valueFields {
		vals, err := f.Floats(name)
		if err != nil {
			return nil, err
		}
		values[j] = vals
	}

	labels := make([]map[string]string, f.Len())
	for i := range labels {
		labels[i] = make(map[string]string, len(idFields))
		for name, vals := range ids {
			labels[i][name] = vals[i]
		}
	}

	records := make([]LongRecord, 0, f.Len()*len(valueFields))
	for j, name := range valueFields {
		for i := 0; i < f.Len(); i++ {
			records = append(records, LongRecord{
				Key:           f.Key(i),
				ID:            maps.Clone(labels[i]),
				SentimentType: name,
				Amount:        values[j][i],
			})
		}
	}
	return records, nil
}
