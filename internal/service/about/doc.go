// Package about collects the information shown by the about command:
// the running version, the operating system and the support contact.
package about
