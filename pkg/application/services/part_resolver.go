package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/repositories"
)

// ErrInconsistentDenominator reports fractional parts that disagree on the
// denominator of their shared choice part. This is a data-modeling mistake
// and is fatal for that part's quantity computation.
var ErrInconsistentDenominator = errors.New("inconsistent fractional denominator")

// Resolution pairs a resolved choice part with the fractional part through
// which it was reached, if any.
type Resolution struct {
	Choice     *entities.ChoicePart
	Fractional *entities.FractionalPart
}

// quantityRef is one board-part back-reference recorded for a choice part.
// Numerator is zero for whole (non-fractional) references.
type quantityRef struct {
	Board       string
	Reference   string
	Count       int
	Numerator   int
	Denominator int
	Install     bool
}

// PartResolver flattens alias and fractional part graphs into concrete
// choice parts and accounts for the quantities each board demands. The
// back-references a selection needs (choice part to board parts, choice part
// to fractional parts) live in the resolver's ledger keyed by part name, so
// the catalog entities stay immutable and cycle-free.
type PartResolver struct {
	catalog repositories.PartCatalog
	logger  *log.Logger
	ledger  map[entities.PartName][]quantityRef
}

// NewPartResolver creates a resolver over catalog.
func NewPartResolver(catalog repositories.PartCatalog, logger *log.Logger) *PartResolver {
	if logger == nil {
		logger = log.Default()
	}
	return &PartResolver{
		catalog: catalog,
		logger:  logger,
		ledger:  make(map[entities.PartName][]quantityRef),
	}
}

// Resolve flattens part into its ordered list of concrete choice parts. An
// alias expands each (count, target) entry count times; a fractional part
// resolves to its underlying choice part and is carried along so the caller
// can register the fractional reference.
func (r *PartResolver) Resolve(part entities.SchematicPart) ([]Resolution, error) {
	switch p := part.(type) {
	case *entities.ChoicePart:
		return []Resolution{{Choice: p}}, nil

	case *entities.AliasPart:
		var resolutions []Resolution
		for _, target := range p.Targets {
			targetPart, err := r.catalog.Lookup(target.Target)
			if err != nil {
				return nil, fmt.Errorf("alias %q target %q: %w", p.Name, target.Target, err)
			}
			for i := 0; i < target.Count; i++ {
				resolved, err := r.Resolve(targetPart)
				if err != nil {
					return nil, err
				}
				resolutions = append(resolutions, resolved...)
			}
		}
		return resolutions, nil

	case *entities.FractionalPart:
		whole, err := r.catalog.Lookup(p.Choice)
		if err != nil {
			return nil, fmt.Errorf("fractional part %q choice %q: %w", p.Name, p.Choice, err)
		}
		choice, ok := whole.(*entities.ChoicePart)
		if !ok {
			return nil, fmt.Errorf("fractional part %q: %q is not a choice part", p.Name, p.Choice)
		}
		return []Resolution{{Choice: choice, Fractional: p}}, nil

	default:
		return nil, fmt.Errorf("unknown schematic part variant %T", part)
	}
}

// Attach records a board part against a resolution's choice part for later
// quantity accounting.
func (r *PartResolver) Attach(board *entities.Board, boardPart entities.BoardPart, resolution Resolution) {
	ref := quantityRef{
		Board:     board.Name,
		Reference: boardPart.Reference,
		Count:     board.Count,
		Install:   boardPart.Install(),
	}
	if resolution.Fractional != nil {
		ref.Numerator = resolution.Fractional.Numerator
		ref.Denominator = resolution.Fractional.Denominator
	}
	name := resolution.Choice.Name
	r.ledger[name] = append(r.ledger[name], ref)
}

// RequiredQuantity computes how many units of choice must be purchased. A
// part referenced only as a whole needs board-count units per reference.
// Fractional references accumulate numerators against the shared
// denominator, breaking a new unit whenever the running total would
// overflow; the result equals ceil(sum(numerators)/denominator).
func (r *PartResolver) RequiredQuantity(choice *entities.ChoicePart) (int, error) {
	refs := r.ledger[choice.Name]

	fractional := false
	for _, ref := range refs {
		if ref.Numerator > 0 {
			fractional = true
			break
		}
	}

	if !fractional {
		count := 0
		for _, ref := range refs {
			count += ref.Count
		}
		return count, nil
	}

	denominator := 0
	for _, ref := range refs {
		if ref.Numerator == 0 {
			return 0, fmt.Errorf("%w: %q is referenced both whole and fractionally",
				ErrInconsistentDenominator, choice.Name)
		}
		if denominator == 0 {
			denominator = ref.Denominator
		} else if ref.Denominator != denominator {
			return 0, fmt.Errorf("%w: %q has denominators %d and %d",
				ErrInconsistentDenominator, choice.Name, denominator, ref.Denominator)
		}
	}

	count := 0
	remainder := 0
	for _, ref := range refs {
		for i := 0; i < ref.Count; i++ {
			if remainder+ref.Numerator > denominator {
				count++
				remainder = 0
			}
			remainder += ref.Numerator
		}
	}
	if remainder > 0 {
		count++
	}
	return count, nil
}

// ReferencesText renders the board references that demand choice, grouped
// by board, e.g. "[main: R1 R2][probe: R7]". References that are not
// installed carry a "(DNI)" marker.
func (r *PartResolver) ReferencesText(choice *entities.ChoicePart) string {
	refs := append([]quantityRef{}, r.ledger[choice.Name]...)
	sort.SliceStable(refs, func(i, j int) bool {
		if refs[i].Board != refs[j].Board {
			return refs[i].Board < refs[j].Board
		}
		prefixI, numberI := entities.ReferenceSortKey(refs[i].Reference)
		prefixJ, numberJ := entities.ReferenceSortKey(refs[j].Reference)
		if prefixI != prefixJ {
			return prefixI < prefixJ
		}
		return numberI < numberJ
	})

	var builder strings.Builder
	previousBoard := ""
	for _, ref := range refs {
		if ref.Board != previousBoard {
			if previousBoard != "" {
				builder.WriteString("]")
			}
			builder.WriteString("[" + ref.Board + ":")
			previousBoard = ref.Board
		}
		builder.WriteString(" " + ref.Reference)
		if !ref.Install {
			builder.WriteString("(DNI)")
		}
	}
	if previousBoard != "" {
		builder.WriteString("]")
	}
	return builder.String()
}

// BoardCounts returns, per board, how many references on that board resolve
// to choice. Used by the per-board assembly summary.
func (r *PartResolver) BoardCounts(choice *entities.ChoicePart) map[string]int {
	counts := make(map[string]int)
	for _, ref := range r.ledger[choice.Name] {
		counts[ref.Board]++
	}
	return counts
}
