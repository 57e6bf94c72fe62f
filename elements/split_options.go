package elements

const (
	DefaultSplitRatio = 0.7
	DefaultSplitSeed  = 42
)

type SplitOptions struct {
	Ratio float64
	Seed  int64
	// when false the split records are returned instead of written
	SaveTo bool
}

func NewSplitOptions() SplitOptions {
	return SplitOptions{
		Ratio:  DefaultSplitRatio,
		Seed:   DefaultSplitSeed,
		SaveTo: true,
	}
}

func (obj SplitOptions) WithRatio(ratio float64) SplitOptions {
	obj.Ratio = ratio
	return obj
}

func (obj SplitOptions) WithSeed(seed int64) SplitOptions {
	obj.Seed = seed
	return obj
}

func (obj SplitOptions) WithSaveTo(saveTo bool) SplitOptions {
	obj.SaveTo = saveTo
	return obj
}
