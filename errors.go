package docskit

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	configValidationCode = "DOCSKIT_CONFIG_INVALID"
	buildFailedCode      = "DOCSKIT_BUILD_FAILED"
)

func wrapConfigError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid docskit configuration").
		WithTextCode(configValidationCode)
}

func wrapBuildError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "registry build failed").
		WithTextCode(buildFailedCode)
}
