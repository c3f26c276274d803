// Package environment names the deployment environment of a process and
// carries it through request contexts.
//
// Production and staging are "hardened": error responses never echo internal
// details there.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	if env.IsHardened() {
//		// mask code bugs
//	}
//
//	router.Use(environment.Middleware(env))
package environment
