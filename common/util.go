package common

import (
	"errors"
	"sync"
)

// RunParallel runs the given functions concurrently and waits for all of
// them. It returns the joined error of every function that failed and the
// number of failures, nil and 0 when everything succeeded.
func RunParallel(funcs ...func() error) (error, int) {
	var wg sync.WaitGroup
	errs := make(chan error, len(funcs))

	for _, fn := range funcs {
		wg.Add(1)
		go func(fn func() error) {
			defer wg.Done()
			err := fn()
			if err != nil {
				errs <- err
			}
		}(fn)
	}

	wg.Wait()
	close(errs)

	var allErrs []error
	for err := range errs {
		allErrs = append(allErrs, err)
	}

	return errors.Join(allErrs...), len(allErrs)
}
