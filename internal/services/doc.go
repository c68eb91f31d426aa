// Package services defines the error taxonomy shared by the build steps and
// the catalog client.
//
// Steps tag failures with one of the sentinel markers through Wrap so the CLI
// can choose an exit code and an operator hint without parsing messages.
// SleepWithContext and IsRetriable back the fetch retry loop.
package services
