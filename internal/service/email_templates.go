package service

import "fmt"

func welcomeEmailTemplate(name, dashboardURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Track your mood, keep a journal and join the community:
%s

Best,
The %s Team`, name, dashboardURL, appName)

	return subject, body
}

func registrationReceivedTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("We received your %s professional application", appName)
	body := fmt.Sprintf(`Hi %s,

Thanks for applying to support the %s community. An administrator will review
your credentials. You can sign in once your account is verified.

Best,
The %s Team`, name, appName, appName)

	return subject, body
}

func professionalApprovedTemplate(name, loginURL, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s professional account is verified", appName)
	body := fmt.Sprintf(`Hi %s,

Your professional account has been verified. Sign in here:
%s

Best,
The %s Team`, name, loginURL, appName)

	return subject, body
}

func professionalRejectedTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s professional application", appName)
	body := fmt.Sprintf(`Hi %s,

We could not verify your professional application, and it has been removed.
You are welcome to apply again with updated documents.

Best,
The %s Team`, name, appName)

	return subject, body
}
