package configs

// Engine holds the tunable policy for the profitability scoring and
// budget allocation engine. All monetary values are in major currency
// units per day unless stated otherwise. Defaults reflect the current
// production tuning.
type Engine struct {
	// TargetROAS is the return-on-ad-spend the profiler divides
	// revenue-per-click by to derive the maximum profitable CPC.
	TargetROAS float64 `env:"TARGET_ROAS" envDefault:"3.0"`

	// MinBookings is the booking count below which per-statistic
	// defaults are substituted when profiling a site.
	MinBookings int `env:"MIN_BOOKINGS" envDefault:"5"`

	// Profiler defaults, substituted individually per missing statistic.
	DefaultAOV            float64 `env:"DEFAULT_AOV" envDefault:"80"`
	DefaultCommissionRate float64 `env:"DEFAULT_COMMISSION_RATE" envDefault:"0.10"`
	DefaultConversionRate float64 `env:"DEFAULT_CONVERSION_RATE" envDefault:"0.02"`

	// BookingWindowDays is the trailing window booking aggregates are
	// computed over.
	BookingWindowDays int `env:"BOOKING_WINDOW_DAYS" envDefault:"90"`

	// Scorer assumptions.
	SearchCTR        float64 `env:"SEARCH_CTR" envDefault:"0.03"`
	SocialCTR        float64 `env:"SOCIAL_CTR" envDefault:"0.012"`
	SocialCPCFactor  float64 `env:"SOCIAL_CPC_FACTOR" envDefault:"0.65"`
	BidHeadroom      float64 `env:"BID_HEADROOM" envDefault:"1.2"`
	GeneralPageCRMul float64 `env:"GENERAL_PAGE_CR_MUL" envDefault:"0.6"`

	// MaxAdGroupSize bounds platform-side ad groups.
	MaxAdGroupSize int `env:"MAX_AD_GROUP_SIZE" envDefault:"20"`

	// Allocator limits.
	DailyBudgetCeiling   float64 `env:"DAILY_BUDGET_CEILING" envDefault:"1200"`
	MinDailyBudgetFloor  float64 `env:"MIN_DAILY_BUDGET_FLOOR" envDefault:"1"`
	MaxPerCampaignBudget float64 `env:"MAX_PER_CAMPAIGN_BUDGET" envDefault:"100"`
	// GreedyShare is the fraction of the ceiling the greedy pass may
	// consume before the remainder is reserved for exploration.
	GreedyShare float64 `env:"GREEDY_SHARE" envDefault:"0.85"`

	// Lifecycle optimizer thresholds.
	ActivationWindowHours int     `env:"ACTIVATION_WINDOW_HOURS" envDefault:"24"`
	CoherenceGate         float64 `env:"COHERENCE_GATE" envDefault:"0.6"`
	FastFailWindowDays    int     `env:"FAST_FAIL_WINDOW_DAYS" envDefault:"3"`
	FastFailMinSpend      float64 `env:"FAST_FAIL_MIN_SPEND" envDefault:"20"`
	AdjustWindowDays      int     `env:"ADJUST_WINDOW_DAYS" envDefault:"7"`
	AdjustMinSpend        float64 `env:"ADJUST_MIN_SPEND" envDefault:"50"`
	ScaleROAS             float64 `env:"SCALE_ROAS" envDefault:"3.0"`
	PauseROAS             float64 `env:"PAUSE_ROAS" envDefault:"1.0"`
	// AdjustStep bounds each cycle's budget/bid change as a fraction.
	AdjustStep float64 `env:"ADJUST_STEP" envDefault:"0.10"`
}
