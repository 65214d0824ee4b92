/*
 *     Copyright 2024 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package experiment

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/looplab/fsm"
	"go.uber.org/atomic"

	"d7y.io/autoweka/experiment/classifier"
	"d7y.io/autoweka/experiment/storage"
	"d7y.io/autoweka/internal/awerrors"
	logger "d7y.io/autoweka/internal/awlog"
	"d7y.io/autoweka/pkg/arff"
	"d7y.io/autoweka/pkg/autoweka"
)

const (
	// DefaultName is the default experiment name.
	DefaultName = "Experiment"

	// DefaultDatasetName is the default name of datasets built from arrays.
	DefaultDatasetName = "dataset1"

	// DefaultResultMetric is the default result metric.
	DefaultResultMetric = ResultMetricErrorRate

	// DefaultOptimizationMethod is the default optimization method.
	DefaultOptimizationMethod = OptimizationMethodSMAC

	// DefaultTunerTimeout is the default number of seconds to run the optimizer.
	DefaultTunerTimeout = 180

	// DefaultTrainTimeout is the default number of seconds to train one
	// configuration on one fold.
	DefaultTrainTimeout = 120

	// DefaultAttributeSelection enables attribute selection by default.
	DefaultAttributeSelection = true

	// DefaultAttributeSelectionTimeout is the default attribute selection budget in seconds.
	DefaultAttributeSelectionTimeout = 100

	// DefaultMemory is the default memory limit of the java processes.
	DefaultMemory = "3000m"

	// DefaultPredictionsFile is the default output of PredictFromFile.
	DefaultPredictionsFile = "out.csv"

	// DocumentFileExt is extension of the experiment document.
	DocumentFileExt = ".xml"

	// TrajectoriesFileExt is extension of the merged trajectories file.
	TrajectoriesFileExt = ".trajectories"
)

// DefaultSeeds are the seeds used by Run when none is given.
var DefaultSeeds = []int{0}

const (
	// Experiment has no experiment folder yet.
	StatePending = "Pending"

	// Experiment folder has been built by the experiment constructor.
	StatePrepared = "Prepared"

	// Seeds of the experiment are running.
	StateRunning = "Running"

	// Trajectories of the last run have been merged.
	StateMerged = "Merged"
)

const (
	// Experiment constructor exited zero.
	EventPrepare = "Prepare"

	// Experiment needs to be prepared again.
	EventReset = "Reset"

	// Seeds start running.
	EventRun = "Run"

	// Trajectories merged.
	EventMerge = "Merge"

	// Run finished without merged trajectories.
	EventRunFailed = "RunFailed"
)

var (
	nameRegexp = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*$`)

	validate = validator.New()
)

func validName(name string) bool {
	return nameRegexp.MatchString(name)
}

// Env is the environment experiments run in.
type Env struct {
	// Client invokes Auto-WEKA.
	Client autoweka.Client `validate:"required"`

	// Storage records seed runs.
	Storage storage.Storage `validate:"required"`

	// Classifiers are the classifiers known to Auto-WEKA.
	Classifiers *classifier.Registry `validate:"required"`

	// BaseFolder is the absolute folder experiment folders are built in.
	BaseFolder string `validate:"required"`

	// ConfigDir is where experiment documents are written.
	ConfigDir string `validate:"required"`

	// DataDir is where datasets built from arrays are written.
	DataDir string `validate:"required"`

	// SMACExecutable is the SMAC launcher script, required by SMAC experiments.
	SMACExecutable string
}

// Config is the search configuration of an experiment.
type Config struct {
	ResultMetric              ResultMetric       `validate:"oneof=errorRate rmse rrse meanAbsoluteErrorMetric relativeAbsoluteErrorMetric"`
	OptimizationMethod        OptimizationMethod `validate:"oneof=SMAC TPE"`
	InstanceGenerator         InstanceGenerator  `validate:"-"`
	TunerTimeout              int                `validate:"gt=0"`
	TrainTimeout              int                `validate:"gt=0"`
	AttributeSelection        bool
	AttributeSelectionTimeout int    `validate:"gt=0"`
	Memory                    string `validate:"required"`
}

// Option is a functional option for experiment.
type Option func(e *Experiment)

// WithResultMetric sets the result metric.
func WithResultMetric(m ResultMetric) Option {
	return func(e *Experiment) {
		e.config.ResultMetric = m
	}
}

// WithOptimizationMethod sets the optimization method.
func WithOptimizationMethod(m OptimizationMethod) Option {
	return func(e *Experiment) {
		e.config.OptimizationMethod = m
	}
}

// WithInstanceGenerator sets the instance generator, nil is the default generator.
func WithInstanceGenerator(g InstanceGenerator) Option {
	return func(e *Experiment) {
		e.config.InstanceGenerator = g
	}
}

// WithTunerTimeout sets the number of seconds to run the optimizer.
func WithTunerTimeout(seconds int) Option {
	return func(e *Experiment) {
		e.config.TunerTimeout = seconds
	}
}

// WithTrainTimeout sets the number of seconds to train a configuration on a fold.
func WithTrainTimeout(seconds int) Option {
	return func(e *Experiment) {
		e.config.TrainTimeout = seconds
	}
}

// WithAttributeSelection enables or disables attribute selection.
func WithAttributeSelection(enabled bool) Option {
	return func(e *Experiment) {
		e.config.AttributeSelection = enabled
	}
}

// WithAttributeSelectionTimeout sets the attribute selection budget.
func WithAttributeSelectionTimeout(seconds int) Option {
	return func(e *Experiment) {
		e.config.AttributeSelectionTimeout = seconds
	}
}

// WithMemory sets the memory limit, passed to Auto-WEKA as is.
func WithMemory(memory string) Option {
	return func(e *Experiment) {
		e.config.Memory = memory
	}
}

// WithRunHook sets a function called after every seed run.
func WithRunHook(hook func(RunResult)) Option {
	return func(e *Experiment) {
		e.runHook = hook
	}
}

// Experiment is the configuration of one hyperparameter search.
// It is not safe for concurrent use.
type Experiment struct {
	name        string
	config      Config
	env         *Env
	classifiers []string
	datasets    []*Dataset
	fileName    string
	runHook     func(RunResult)

	// stale is set when a configuration change resets a prepared
	// experiment, recorded runs are cleared on the next prepare.
	stale bool

	// Experiment state machine.
	FSM *fsm.FSM

	// CreatedAt is experiment create time.
	CreatedAt *atomic.Time

	// UpdatedAt is experiment update time.
	UpdatedAt *atomic.Time

	// Experiment log.
	Log *logger.SugaredLoggerOnWith
}

// New returns a new experiment, options are validated eagerly.
func New(name string, env *Env, options ...Option) (*Experiment, error) {
	if name == "" {
		name = DefaultName
	}

	if !validName(name) {
		return nil, awerrors.Newf(awerrors.CodeConfiguration, "experiment name %q is not filesystem safe", name)
	}

	if env == nil {
		return nil, awerrors.New(awerrors.CodeConfiguration, "experiment requires an environment")
	}

	if err := validate.Struct(env); err != nil {
		return nil, configurationError(err)
	}

	env, err := absEnv(env)
	if err != nil {
		return nil, err
	}

	e := &Experiment{
		name: name,
		env:  env,
		config: Config{
			ResultMetric:              DefaultResultMetric,
			OptimizationMethod:        DefaultOptimizationMethod,
			TunerTimeout:              DefaultTunerTimeout,
			TrainTimeout:              DefaultTrainTimeout,
			AttributeSelection:        DefaultAttributeSelection,
			AttributeSelectionTimeout: DefaultAttributeSelectionTimeout,
			Memory:                    DefaultMemory,
		},
		CreatedAt: atomic.NewTime(time.Now()),
		UpdatedAt: atomic.NewTime(time.Now()),
		Log:       logger.WithExperiment(name),
	}

	for _, opt := range options {
		opt(e)
	}

	if err := validate.Struct(&e.config); err != nil {
		return nil, configurationError(err)
	}

	if e.config.OptimizationMethod == OptimizationMethodSMAC && env.SMACExecutable == "" {
		return nil, awerrors.New(awerrors.CodeConfiguration, "SMAC requires parameter smacExecutable")
	}

	// Initialize state machine.
	e.FSM = fsm.NewFSM(
		StatePending,
		fsm.Events{
			{Name: EventPrepare, Src: []string{StatePending, StatePrepared, StateMerged}, Dst: StatePrepared},
			{Name: EventReset, Src: []string{StatePrepared, StateMerged}, Dst: StatePending},
			{Name: EventRun, Src: []string{StatePrepared, StateMerged}, Dst: StateRunning},
			{Name: EventMerge, Src: []string{StateRunning}, Dst: StateMerged},
			{Name: EventRunFailed, Src: []string{StateRunning}, Dst: StatePrepared},
		},
		fsm.Callbacks{
			EventPrepare: func(ctx context.Context, ev *fsm.Event) {
				e.UpdatedAt.Store(time.Now())
				e.Log.Infof("experiment state is %s", ev.FSM.Current())
			},
			EventReset: func(ctx context.Context, ev *fsm.Event) {
				e.UpdatedAt.Store(time.Now())
				e.Log.Infof("experiment state is %s", ev.FSM.Current())
			},
			EventRun: func(ctx context.Context, ev *fsm.Event) {
				e.UpdatedAt.Store(time.Now())
				e.Log.Infof("experiment state is %s", ev.FSM.Current())
			},
			EventMerge: func(ctx context.Context, ev *fsm.Event) {
				e.UpdatedAt.Store(time.Now())
				e.Log.Infof("experiment state is %s", ev.FSM.Current())
			},
			EventRunFailed: func(ctx context.Context, ev *fsm.Event) {
				e.UpdatedAt.Store(time.Now())
				e.Log.Infof("experiment state is %s", ev.FSM.Current())
			},
		},
	)

	return e, nil
}

// absEnv returns a copy of env whose directories are absolute.
func absEnv(env *Env) (*Env, error) {
	abs := *env
	for _, dir := range []*string{&abs.BaseFolder, &abs.ConfigDir, &abs.DataDir} {
		path, err := filepath.Abs(*dir)
		if err != nil {
			return nil, awerrors.Newf(awerrors.CodeConfiguration, "resolve directory %s: %s", *dir, err.Error())
		}
		*dir = path
	}

	return &abs, nil
}

// configurationError converts validation failures into a ConfigurationError.
func configurationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return awerrors.New(awerrors.CodeConfiguration, err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Field() {
		case "ResultMetric":
			metrics := make([]string, 0, len(ResultMetrics))
			for _, m := range ResultMetrics {
				metrics = append(metrics, string(m))
			}
			messages = append(messages, fmt.Sprintf("%v is not a valid result metric, choose one from: %s", fe.Value(), strings.Join(metrics, ", ")))
		case "OptimizationMethod":
			methods := make([]string, 0, len(OptimizationMethods))
			for _, m := range OptimizationMethods {
				methods = append(methods, string(m))
			}
			messages = append(messages, fmt.Sprintf("%v is not a valid optimization method, choose one from: %s", fe.Value(), strings.Join(methods, ", ")))
		default:
			owner := strings.ToLower(strings.SplitN(fe.StructNamespace(), ".", 2)[0])
			messages = append(messages, fmt.Sprintf("%s requires parameter %s", owner, fe.Field()))
		}
	}

	return awerrors.New(awerrors.CodeConfiguration, strings.Join(messages, "; "))
}

// Name returns the experiment name.
func (e *Experiment) Name() string {
	return e.name
}

// Config returns a copy of the search configuration.
func (e *Experiment) Config() Config {
	return e.config
}

// Classifiers returns the allowed classifiers in insertion order, empty means all.
func (e *Experiment) Classifiers() []string {
	return append([]string(nil), e.classifiers...)
}

// Datasets returns the attached datasets.
func (e *Experiment) Datasets() []Dataset {
	datasets := make([]Dataset, 0, len(e.datasets))
	for _, d := range e.datasets {
		datasets = append(datasets, *d)
	}

	return datasets
}

// FileName returns the path of the written document, empty before prepare.
func (e *Experiment) FileName() string {
	return e.fileName
}

// Prepared reports whether the experiment folder has been built for the
// current configuration.
func (e *Experiment) Prepared() bool {
	return e.FSM.Is(StatePrepared) || e.FSM.Is(StateMerged)
}

// AddClassifier restricts the search to id, call it several times to allow
// more classifiers. The experiment has to be prepared again afterwards.
func (e *Experiment) AddClassifier(id string) error {
	if !e.env.Classifiers.Contains(id) {
		return awerrors.Newf(awerrors.CodeConfiguration, "%s is not one of the available classifiers", id)
	}

	for _, c := range e.classifiers {
		if c == id {
			return nil
		}
	}

	e.classifiers = append(e.classifiers, id)
	e.UpdatedAt.Store(time.Now())
	if e.Prepared() {
		e.stale = true
		return e.event(EventReset)
	}

	return nil
}

// SetDataset writes train and the optional test set as ARFF files into
// the data directory and attaches them under name.
func (e *Experiment) SetDataset(name string, train, test *arff.Dataset) error {
	if err := e.canAttach(); err != nil {
		return err
	}

	if name == "" {
		name = DefaultDatasetName
	}

	if !validName(name) {
		return awerrors.Newf(awerrors.CodeConfiguration, "dataset name %q is not filesystem safe", name)
	}

	if train == nil {
		return awerrors.New(awerrors.CodeConfiguration, "dataset requires training data")
	}

	d := &Dataset{
		Name:      name,
		TrainFile: filepath.Join(e.env.DataDir, name+TrainFileSuffix),
	}
	if err := writeARFF(d.TrainFile, name, train); err != nil {
		return err
	}

	if test != nil {
		d.TestFile = filepath.Join(e.env.DataDir, name+TestFileSuffix)
		if err := writeARFF(d.TestFile, name, test); err != nil {
			return err
		}
	}

	e.attach(d)
	return nil
}

// SetDatasetFiles attaches existing ARFF files, testFile and name are optional.
func (e *Experiment) SetDatasetFiles(trainFile, testFile, name string) error {
	if err := e.canAttach(); err != nil {
		return err
	}

	d, err := NewDataset(trainFile, testFile, name)
	if err != nil {
		return err
	}

	e.attach(d)
	return nil
}

func (e *Experiment) canAttach() error {
	if len(e.datasets) > 0 {
		return awerrors.Newf(awerrors.CodeConfiguration, "only one dataset per experiment is supported, %s was already added", e.datasets[0].Name)
	}

	return nil
}

func (e *Experiment) attach(d *Dataset) {
	e.datasets = append(e.datasets, d)
	e.UpdatedAt.Store(time.Now())
	e.Log.Infof("dataset %s attached, train file %s, test file %s", d.Name, d.TrainFile, d.TestArff())
}

func writeARFF(path, relation string, d *arff.Dataset) error {
	named := *d
	named.Relation = relation
	if err := arff.WriteFile(path, &named); err != nil {
		return awerrors.Newf(awerrors.CodeConfiguration, "write dataset %s: %s", path, err.Error())
	}

	return nil
}

// Folder returns the experiment folder of dataset d.
func (e *Experiment) Folder(d *Dataset) string {
	return filepath.Join(e.env.BaseFolder, e.folderName(d))
}

// TrajectoriesFile returns the merged trajectories file of dataset d.
func (e *Experiment) TrajectoriesFile(d *Dataset) string {
	return filepath.Join(e.Folder(d), e.folderName(d)+TrajectoriesFileExt)
}

func (e *Experiment) folderName(d *Dataset) string {
	return e.name + "-" + d.Name
}

func (e *Experiment) dataset(name string) (*Dataset, error) {
	for _, d := range e.datasets {
		if d.Name == name {
			return d, nil
		}
	}

	return nil, awerrors.Newf(awerrors.CodeConfiguration, "dataset %s is not part of experiment %s", name, e.name)
}

// event fires an fsm event, staying in the same state is not an error.
// The caller's context is not passed on: fsm aborts a transition on a
// canceled context and rejects every later event.
func (e *Experiment) event(event string) error {
	if err := e.FSM.Event(context.Background(), event); err != nil {
		var noTransitionError fsm.NoTransitionError
		if errors.As(err, &noTransitionError) {
			return nil
		}

		return err
	}

	return nil
}
