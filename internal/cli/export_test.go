package cli

// Export internal functions for testing.

// RunClassify exports runClassify for testing.
var RunClassify = runClassify

// ClassifyOptions exports classifyOptions for testing.
type ClassifyOptions = classifyOptions

// RunPresent exports runPresent for testing.
var RunPresent = runPresent

// PresentOptions exports presentOptions for testing.
type PresentOptions = presentOptions

// RunCheck exports runCheck for testing.
var RunCheck = runCheck

// CheckOptions exports checkOptions for testing.
type CheckOptions = checkOptions

// SelectTargets exports selectTargets for testing.
var SelectTargets = selectTargets

// RunServe exports runServe for testing.
var RunServe = runServe

// RunConfigSet exports runConfigSet for testing.
var RunConfigSet = runConfigSet

// RunConfigGet exports runConfigGet for testing.
var RunConfigGet = runConfigGet

// RunConfigList exports runConfigList for testing.
var RunConfigList = runConfigList

// ReadInput exports readInput for testing.
var ReadInput = readInput
