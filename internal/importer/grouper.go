package importer

import "orientinsight/internal/model"

// ReservationGroup collects the tourists contributed to one reservation by a
// batch, partitioned by trip segment. Row order from the source files is
// preserved within each segment.
type ReservationGroup struct {
	ReservationID     string
	ReservationNumber string
	Segments          map[model.TripSegment][]*model.Tourist
}

// GroupBySegment folds parsed manifests into per-reservation groups. A
// reservation may receive contributions from several files, e.g. a primary
// manifest and a separate extension manifest of the same group. Pure fold,
// no store access.
func GroupBySegment(manifests []*model.ParsedManifest) []*ReservationGroup {
	index := make(map[string]*ReservationGroup)
	var order []string

	for _, m := range manifests {
		group, ok := index[m.ReservationID]
		if !ok {
			group = &ReservationGroup{
				ReservationID:     m.ReservationID,
				ReservationNumber: m.ReservationNumber,
				Segments:          make(map[model.TripSegment][]*model.Tourist),
			}
			index[m.ReservationID] = group
			order = append(order, m.ReservationID)
		}
		group.Segments[m.Segment] = append(group.Segments[m.Segment], m.Tourists...)
	}

	groups := make([]*ReservationGroup, 0, len(order))
	for _, id := range order {
		groups = append(groups, index[id])
	}
	return groups
}
