package trace

import (
	"fmt"
	"strings"
)

// Narrate renders s as an English sentence. Agents are numbered from 1
// for readers; cut positions are shown as percentages of cakeSize.
func Narrate(s Step, cakeSize float64) string {
	who := actorName(s.Actor)
	switch s.Action {
	case InitialCut:
		return fmt.Sprintf("%s divides the resource into %s at %s", who, partsName(len(s.Cuts)+1), positions(s.Cuts, cakeSize))
	case DeclineTrim:
		return fmt.Sprintf("%s decides the two largest pieces are equal so doesn't trim them", who)
	case Trim:
		if len(s.Pieces) >= 3 {
			return fmt.Sprintf("%s trims off part of piece %d to make it the same value as piece %d. The trimmings are set aside",
				who, s.Pieces[1].ID, s.Pieces[2].ID)
		}
		return fmt.Sprintf("%s trims off part of piece %d. The trimmings are set aside", who, pieceID(s, 1))
	case Pick:
		return fmt.Sprintf("%s chooses piece %d", who, pieceID(s, 0))
	case ForcedPick:
		return fmt.Sprintf("%s trimmed piece %d earlier and because it still remains they must choose it now", who, pieceID(s, 0))
	case FinalRemainder:
		return fmt.Sprintf("%s chooses remaining piece", who)
	case ClaimTrimmings:
		return fmt.Sprintf("%s did not choose the trimmed piece earlier so gets to divide the trimmings", who)
	case DivideTrimmings:
		return fmt.Sprintf("%s divides the trimmings into %s at %s", who, partsName(len(s.Cuts)+1), positions(s.Cuts, cakeSize))
	case PickTrimming:
		return fmt.Sprintf("%s chooses trimming %d", who, pieceID(s, 0))
	case RemainingTrimming:
		return fmt.Sprintf("%s chooses remaining trimming", who)
	case Equipartition:
		return fmt.Sprintf("%s divides the resource into %s at %s", who, partsName(len(s.Cuts)+1), positions(s.Cuts, cakeSize))
	case Segmentation:
		return fmt.Sprintf("%s first divides the resource into segments", who)
	case LocateCuts:
		ids := make([]string, len(s.Pieces))
		for i, p := range s.Pieces {
			ids[i] = fmt.Sprint(p.ID)
		}
		return fmt.Sprintf("%s identifies the segments containing the cuts as %s", who, joinList(ids))
	case Terminate:
		return fmt.Sprintf("%s terminates at the approximately envy-free division at %s", who, positions(s.Cuts, cakeSize))
	case Assigned:
		return fmt.Sprintf("%s is assigned piece %d", who, pieceID(s, 0))
	case Reduce:
		return fmt.Sprintf("%s finds the other agents prefer piece %d and begins reducing its size", who, pieceID(s, 0))
	default:
		return fmt.Sprintf("%s performs %s", who, s.Action)
	}
}

// NarrateAll renders every step, one sentence per element.
func NarrateAll(steps []Step, cakeSize float64) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = Narrate(s, cakeSize)
	}
	return out
}

func actorName(actor int) string {
	if actor == ActorProcedure {
		return "The procedure"
	}
	return fmt.Sprintf("Agent %d", actor+1)
}

func pieceID(s Step, i int) int {
	if i < len(s.Pieces) {
		return s.Pieces[i].ID
	}
	return 0
}

func partsName(n int) string {
	switch n {
	case 2:
		return "halves"
	case 3:
		return "thirds"
	case 4:
		return "quarters"
	default:
		return fmt.Sprintf("%d pieces", n)
	}
}

// positions formats cuts as "12.500%, 40.000% and 80.000%".
func positions(cuts []float64, cakeSize float64) string {
	parts := make([]string, len(cuts))
	for i, c := range cuts {
		pct := 0.0
		if cakeSize > 0 {
			pct = c / cakeSize * 100
		}
		parts[i] = fmt.Sprintf("%.3f%%", pct)
	}
	return joinList(parts)
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return "nothing"
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
