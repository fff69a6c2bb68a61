package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
)

// PartDemand is one choice part together with its required quantity.
type PartDemand struct {
	Choice   *entities.ChoicePart
	Required int
}

// VendorSetOptimizer winnows the set of vendors an order draws from: first
// dropping vendors whose minimum-order requirement the order cannot meet,
// then greedily dropping vendors whose marginal savings do not justify an
// assumed per-vendor shipping cost. The algorithm is greedy, not globally
// optimal, but deterministic for identical catalog and quote state.
type VendorSetOptimizer struct {
	selector *ChoicePartSelector
	policy   *VendorPolicy
	logger   *log.Logger
}

// NewVendorSetOptimizer creates an optimizer using selector for trial
// selections and policy for thresholds and priorities.
func NewVendorSetOptimizer(selector *ChoicePartSelector, policy *VendorPolicy, logger *log.Logger) *VendorSetOptimizer {
	if logger == nil {
		logger = log.Default()
	}
	return &VendorSetOptimizer{selector: selector, policy: policy, logger: logger}
}

// quad is the comparable outcome of one trial exclusion. Sorting ascending
// brings the most interesting vendor to exclude to the front.
type quad struct {
	missing  int
	cost     decimal.Decimal
	priority int
	vendor   string
}

func (q quad) less(other quad) bool {
	if q.missing != other.missing {
		return q.missing < other.missing
	}
	if cmp := q.cost.Cmp(other.cost); cmp != 0 {
		return cmp < 0
	}
	if q.priority != other.priority {
		return q.priority < other.priority
	}
	return q.vendor < other.vendor
}

// Optimize mutates excluded in place and returns the human-readable reasons
// for every vendor it dropped. When skipShippingPass is true (an explicit
// vendor allow-list was given) only the minimum-order pass runs.
func (o *VendorSetOptimizer) Optimize(
	demands []PartDemand,
	excluded map[string]bool,
	skipShippingPass bool,
) []string {
	var messages []string
	messages = append(messages, o.excludeHighMinimumVendors(demands, excluded)...)
	if !skipShippingPass {
		messages = append(messages, o.excludeForShippingCosts(demands, excluded)...)
	}
	return messages
}

// excludeHighMinimumVendors drops every vendor whose attributed order total
// falls below its configured minimum-order threshold.
func (o *VendorSetOptimizer) excludeHighMinimumVendors(demands []PartDemand, excluded map[string]bool) []string {
	vendors := make([]string, 0, len(o.policy.Minimums))
	for vendor := range o.policy.Minimums {
		vendors = append(vendors, vendor)
	}
	sort.Strings(vendors)

	var messages []string
	for _, vendor := range vendors {
		minimum := o.policy.Minimums[vendor]

		total := decimal.Zero
		for _, demand := range demands {
			selection, err := o.selector.Select(demand.Choice, demand.Required, excluded)
			if err != nil {
				continue
			}
			if selection.VendorName == vendor {
				total = total.Add(selection.TotalCost)
			}
		}

		if total.LessThan(minimum) {
			excluded[vendor] = true
			messages = append(messages, fmt.Sprintf(
				"Excluding '%s': needed order %s < minimum order %s",
				vendor, total.StringFixed(2), minimum.StringFixed(2)))
		}
	}
	return messages
}

// excludeForShippingCosts repeatedly excludes the vendor whose removal costs
// the least, as long as the savings stay under the shipping threshold, at
// least one vendor remains, the designated never-exclude vendor is left
// alone, and no additional parts become unfulfillable.
func (o *VendorSetOptimizer) excludeForShippingCosts(demands []PartDemand, excluded map[string]bool) []string {
	var messages []string

	initial := o.computeQuad(demands, excluded, "")
	missingBudget := initial.missing

	for {
		base := o.computeQuad(demands, excluded, "")
		if base.missing > missingBudget {
			// Excluding further vendors would leave the order incomplete.
			break
		}

		vendors := o.vendorNames(demands, excluded)
		if len(vendors) <= 1 {
			break
		}

		trials := make([]quad, 0, len(vendors))
		for _, vendor := range vendors {
			trialExcluded := cloneSet(excluded)
			trialExcluded[vendor] = true
			trials = append(trials, o.computeQuad(demands, trialExcluded, vendor))
		}
		sort.Slice(trials, func(i, j int) bool { return trials[i].less(trials[j]) })

		// Vendors whose exclusion saves nothing go immediately, as long as
		// at least two candidates stay on the table afterward.
		for len(trials) >= 2 {
			lowest := trials[0]
			if lowest.missing <= missingBudget && lowest.cost.Equal(base.cost) {
				excluded[lowest.vendor] = true
				messages = append(messages, fmt.Sprintf("Excluding '%s': saves nothing", lowest.vendor))
				trials = trials[1:]
				continue
			}
			break
		}

		lowest := trials[0]
		if lowest.missing > missingBudget {
			break
		}
		savings := lowest.cost.Sub(base.cost)
		if savings.LessThan(o.policy.ShippingThreshold) &&
			len(trials) >= 2 &&
			lowest.vendor != o.policy.NeverExclude {
			excluded[lowest.vendor] = true
			messages = append(messages, fmt.Sprintf(
				"Excluding '%s': only saves %s", lowest.vendor, savings.StringFixed(2)))
			continue
		}
		// The cheapest remaining exclusion is worth its shipping; done.
		break
	}

	return messages
}

// computeQuad selects every demand under excluded and totals the outcome,
// tagging it with candidateVendor and its exclusion priority.
func (o *VendorSetOptimizer) computeQuad(demands []PartDemand, excluded map[string]bool, candidateVendor string) quad {
	missing := 0
	total := decimal.Zero
	for _, demand := range demands {
		selection, err := o.selector.Select(demand.Choice, demand.Required, excluded)
		if err != nil {
			if errors.Is(err, ErrUnfulfillable) {
				missing++
			}
			continue
		}
		total = total.Add(selection.TotalCost)
	}
	priority := 0
	if candidateVendor != "" {
		priority = o.policy.PriorityFor(candidateVendor)
	}
	return quad{
		missing:  missing,
		cost:     total,
		priority: priority,
		vendor:   candidateVendor,
	}
}

// vendorNames returns every vendor still quoting any demanded part, sorted
// for deterministic iteration.
func (o *VendorSetOptimizer) vendorNames(demands []PartDemand, excluded map[string]bool) []string {
	seen := make(map[string]bool)
	for _, demand := range demands {
		for _, key := range demand.Choice.ActualPartKeys {
			actual, err := o.selector.catalog.ActualPart(key)
			if err != nil {
				continue
			}
			for _, quote := range actual.Quotes {
				if !excluded[quote.VendorName] {
					seen[quote.VendorName] = true
				}
			}
		}
	}
	vendors := make([]string, 0, len(seen))
	for vendor := range seen {
		vendors = append(vendors, vendor)
	}
	sort.Strings(vendors)
	return vendors
}

func cloneSet(set map[string]bool) map[string]bool {
	clone := make(map[string]bool, len(set)+1)
	for key, value := range set {
		clone[key] = value
	}
	return clone
}
