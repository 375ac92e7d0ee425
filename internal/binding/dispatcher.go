package binding

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/KaramelBytes/happydash/internal/chartspec"
	"github.com/KaramelBytes/happydash/internal/controls"
	"github.com/KaramelBytes/happydash/internal/dataset"
)

// Update carries a freshly computed chart. Err is set when the view failed
// and Chart holds its empty-result state.
type Update struct {
	View     chartspec.ViewID `json:"view"`
	Revision string           `json:"revision"`
	Chart    *chartspec.Chart `json:"chart"`
	Err      error            `json:"-"`
}

// Dispatcher owns one control state and the last chart of every view.
// It is not safe for concurrent use; the table it reads is.
type Dispatcher struct {
	table    *dataset.Table
	bindings []Binding
	state    controls.State
	outputs  map[chartspec.ViewID]*chartspec.Chart
	log      logrus.FieldLogger
}

// NewDispatcher starts from initial. Call Init to compute the first charts.
func NewDispatcher(t *dataset.Table, bindings []Binding, initial controls.State, log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{
		table:    t,
		bindings: bindings,
		state:    initial,
		outputs:  make(map[chartspec.ViewID]*chartspec.Chart, len(bindings)),
		log:      log,
	}
}

// State returns the current control values.
func (d *Dispatcher) State() controls.State { return d.state }

// Output returns the last chart computed for view, or nil.
func (d *Dispatcher) Output(view chartspec.ViewID) *chartspec.Chart { return d.outputs[view] }

// Init computes every view for the current state.
func (d *Dispatcher) Init() []Update {
	out := make([]Update, 0, len(d.bindings))
	for _, b := range d.bindings {
		out = append(out, d.recompute(b))
	}
	return out
}

// Apply merges a batch of control changes and recomputes exactly the views
// that depend on a field whose value changed. Other views keep their charts.
func (d *Dispatcher) Apply(p controls.Patch) []Update {
	next := d.state.Apply(p)
	changed := d.state.Diff(next)
	d.state = next
	if len(changed) == 0 {
		return nil
	}
	d.log.WithField("fields", changed).Debug("controls changed")
	var out []Update
	for _, b := range d.bindings {
		if b.DependsOn(changed) {
			out = append(out, d.recompute(b))
		}
	}
	return out
}

func (d *Dispatcher) recompute(b Binding) Update {
	chart, err := safeCompute(b, d.table, d.state)
	if err != nil {
		d.log.WithFields(logrus.Fields{"view": b.View, "region": d.state.Region}).WithError(err).Warn("view failed; showing empty result")
		chart = chartspec.EmptyChart(b.View, err.Error())
	} else {
		d.log.WithField("view", b.View).Debug("view recomputed")
	}
	d.outputs[b.View] = chart
	return Update{View: b.View, Revision: uuid.NewString(), Chart: chart, Err: err}
}

// Compute evaluates one binding against state outside any dispatcher,
// mapping failures to the empty-result state.
func Compute(b Binding, t *dataset.Table, s controls.State) (*chartspec.Chart, error) {
	chart, err := safeCompute(b, t, s)
	if err != nil {
		return chartspec.EmptyChart(b.View, err.Error()), err
	}
	return chart, nil
}

// safeCompute keeps a panicking view from taking down the others.
func safeCompute(b Binding, t *dataset.Table, s controls.State) (chart *chartspec.Chart, err error) {
	defer func() {
		if r := recover(); r != nil {
			chart, err = nil, errors.Errorf("view %s panicked: %v", b.View, r)
		}
	}()
	chart, err = b.Compute(t, s)
	if err == nil && chart == nil {
		err = errors.Errorf("view %s returned no chart", b.View)
	}
	return chart, err
}
