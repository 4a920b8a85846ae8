package cleanup

import "log/slog"

type Job struct {
	Name string
	F    func() error
}

var (
	jobs []*Job
)

func Register(j *Job) {
	jobs = append(jobs, j)
}

// CleanUp runs the registered jobs in registration order. Errors are
// logged and don't stop the remaining jobs.
func CleanUp() {
	for _, j := range jobs {
		slog.Info("cleanup job started", slog.String("job", j.Name))
		err := j.F()
		if err != nil {
			slog.Error("cleanup job finished with error", slog.String("job", j.Name), slog.String("error", err.Error()))
		} else {
			slog.Info("cleaned", slog.String("job", j.Name))
		}
	}
}
