// Package selection persists the folder Selection between command invocations.
//
// The FileRepository stores the ordered folder list as YAML on disk and
// exposes a Repository interface the services depend on.
package selection
