// Package catalog declares the fixed registry of comparable check-in metrics.
//
// Each metric declares its direction explicitly. Times and counts of
// attempts-to-fail are lower-is-better; power, distance, hold durations and
// counts of successes are higher-is-better. The direction drives every
// comparison, so it is data on the metric record, never inferred from the
// value.
package catalog

// Trait cluster keys produced upstream per player per evaluation cycle.
const (
	ClusterPowerStrength     = "ps"
	ClusterTechniqueControl  = "tc"
	ClusterMobilityStability = "ms"
	ClusterDecisionCognition = "dc"
)

// SourceKind selects how a metric reads its value from a score document.
type SourceKind int

const (
	// SourceField reads a single named field.
	SourceField SourceKind = iota
	// SourceMaxOf reads two independently nullable fields and takes the max.
	SourceMaxOf
)

// Source describes where a metric's raw value comes from.
type Source struct {
	Kind   SourceKind
	Field  string
	FieldB string // second field for SourceMaxOf
}

// Field builds a direct-lookup source.
func Field(name string) Source {
	return Source{Kind: SourceField, Field: name}
}

// MaxOf builds a max-of-two-fields source.
func MaxOf(a, b string) Source {
	return Source{Kind: SourceMaxOf, Field: a, FieldB: b}
}

// Metric describes one comparable check-in test.
type Metric struct {
	ID             string
	DisplayName    string
	HigherIsBetter bool
	Source         Source
	Format         Format
}

// ClusterMetric describes one composite trait group.
type ClusterMetric struct {
	Key  string
	Name string
}

// Registry is an immutable set of metrics constructed once and injected into
// the report builder. Tests may substitute a smaller registry.
type Registry struct {
	metrics  []Metric
	clusters []ClusterMetric
}

// NewRegistry creates a registry from the given metric definitions.
// The inputs are copied so later mutation of the slices has no effect.
func NewRegistry(metrics []Metric, clusters []ClusterMetric) *Registry {
	r := &Registry{
		metrics:  make([]Metric, len(metrics)),
		clusters: make([]ClusterMetric, len(clusters)),
	}
	copy(r.metrics, metrics)
	copy(r.clusters, clusters)
	return r
}

// Metrics returns the catalog metrics in declaration order.
func (r *Registry) Metrics() []Metric {
	out := make([]Metric, len(r.metrics))
	copy(out, r.metrics)
	return out
}

// Clusters returns the cluster metrics in declaration order.
func (r *Registry) Clusters() []ClusterMetric {
	out := make([]ClusterMetric, len(r.clusters))
	copy(out, r.clusters)
	return out
}

// Default returns the standard combine catalog: thirteen check-in tests
// spanning power, technique, mobility and cognition, plus the four trait
// clusters.
func Default() *Registry {
	return NewRegistry([]Metric{
		{
			ID:             "one_v_one",
			DisplayName:    "1v1 Average",
			HigherIsBetter: true,
			Source:         Field("one_v_one_avg"),
			Format:         DefaultFormat(),
		},
		{
			ID:             "agility",
			DisplayName:    "5-10-5 Agility",
			HigherIsBetter: false, // best time
			Source:         Field("agility_best_time"),
			Format:         SuffixFormat("s"),
		},
		{
			ID:             "dorsiflexion",
			DisplayName:    "Ankle Dorsiflexion",
			HigherIsBetter: true,
			Source:         Field("dorsiflexion_avg"),
			Format:         SuffixFormat("cm"),
		},
		{
			ID:             "double_leg_jump",
			DisplayName:    "Double-Leg Jump",
			HigherIsBetter: true,
			Source:         Field("double_leg_jump_reps"),
			Format:         DefaultFormat(),
		},
		{
			ID:             "plank",
			DisplayName:    "Core Plank Hold",
			HigherIsBetter: true, // hold duration
			Source:         Field("plank_hold_time"),
			Format:         SuffixFormat("s"),
		},
		{
			ID:             "single_leg_hop",
			DisplayName:    "Single-Leg Hop",
			HigherIsBetter: true,
			Source:         MaxOf("single_leg_hop_left", "single_leg_hop_right"),
			Format:         SuffixFormat("cm"),
		},
		{
			ID:             "juggling",
			DisplayName:    "Juggling Best",
			HigherIsBetter: true,
			Source:         Field("juggling_best"),
			Format:         DefaultFormat(),
		},
		{
			ID:             "skill_move",
			DisplayName:    "Skill Move Rating",
			HigherIsBetter: true,
			Source:         Field("skill_move_avg"),
			Format:         DefaultFormat(),
		},
		{
			ID:             "figure_eight",
			DisplayName:    "Figure-8 Loops",
			HigherIsBetter: true,
			Source:         Field("figure_eight_loops"),
			Format:         DefaultFormat(),
		},
		{
			ID:             "passing_gate",
			DisplayName:    "Passing Gates",
			HigherIsBetter: true,
			Source:         Field("passing_gate_hits"),
			Format:         DefaultFormat(),
		},
		{
			ID:             "reaction_sprint",
			DisplayName:    "Reaction Sprint",
			HigherIsBetter: false, // best time
			Source:         Field("reaction_sprint_best"),
			Format:         SuffixFormat("s"),
		},
		{
			ID:             "shot_power",
			DisplayName:    "Shot Power",
			HigherIsBetter: true,
			Source:         Field("shot_power_avg"),
			Format:         SuffixFormat("km/h"),
		},
		{
			ID:             "serve_distance",
			DisplayName:    "Serve Distance",
			HigherIsBetter: true,
			Source:         Field("serve_distance_avg"),
			Format:         SuffixFormat("m"),
		},
	}, []ClusterMetric{
		{Key: ClusterPowerStrength, Name: "Power / Strength"},
		{Key: ClusterTechniqueControl, Name: "Technique / Control"},
		{Key: ClusterMobilityStability, Name: "Mobility / Stability"},
		{Key: ClusterDecisionCognition, Name: "Decision / Cognition"},
	})
}
