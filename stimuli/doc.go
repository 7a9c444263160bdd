// Package stimuli discovers image files on disk and writes the stimulus
// manifest consumed by the browser runtime.
//
// LoadDir lists the .png/.jpg/.jpeg files of one directory in name order.
// LoadPools builds sampling pools from a target directory and an optional
// filler directory; without one, both roles draw from the target pool.
// A Manifest serializes the two file lists either as YAML or as the
// stimuli.js script the task page includes.
package stimuli
