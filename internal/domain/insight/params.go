package insight

// Priority levels recognized in reminder metadata.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Params defines all configurable parameters for insight calculations
type Params struct {
	// Urgency weight added per priority level
	PriorityWeights map[string]float64

	// Priority assumed when a reminder's metadata carries none
	DefaultPriority string

	// Estimated effort assumed when metadata carries none
	DefaultEstimatedHours float64

	// Working hours available per day for the completion estimate
	DailyCapacityHours float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance
type ParamsConfig struct {
	CriticalWeight float64
	HighWeight     float64
	MediumWeight   float64
	LowWeight      float64

	DefaultPriority       string
	DefaultEstimatedHours float64
	DailyCapacityHours    float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		PriorityWeights: map[string]float64{
			PriorityCritical: 30.0,
			PriorityHigh:     20.0,
			PriorityMedium:   10.0,
			PriorityLow:      0.0,
		},

		DefaultPriority:       PriorityMedium,
		DefaultEstimatedHours: 1.0,
		DailyCapacityHours:    8.0,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.CriticalWeight != 0 {
		params.PriorityWeights[PriorityCritical] = config.CriticalWeight
	}
	if config.HighWeight != 0 {
		params.PriorityWeights[PriorityHigh] = config.HighWeight
	}
	if config.MediumWeight != 0 {
		params.PriorityWeights[PriorityMedium] = config.MediumWeight
	}
	if config.LowWeight != 0 {
		params.PriorityWeights[PriorityLow] = config.LowWeight
	}

	if config.DefaultPriority != "" {
		params.DefaultPriority = config.DefaultPriority
	}
	if config.DefaultEstimatedHours > 0 {
		params.DefaultEstimatedHours = config.DefaultEstimatedHours
	}
	if config.DailyCapacityHours > 0 {
		params.DailyCapacityHours = config.DailyCapacityHours
	}

	return params
}

// priorityWeight returns the urgency weight for a priority label.
// Unknown labels carry no weight, matching the permissive metadata contract.
func (p *Params) priorityWeight(priority string) float64 {
	if priority == "" {
		priority = p.DefaultPriority
	}
	return p.PriorityWeights[priority]
}
