package main

// Page copy that is not part of the site content file.
var (
	MessageSent   = "Message sent successfully! I'll get back to you soon."
	MessageFailed = "Failed to send message. Try again later."
	MessageBusy   = "Your message is still being sent. Please wait a moment."

	HeroGreeting   = "Hi, I'm"
	HeroPrimary    = "View My Work"
	HeroSecondary  = "Get In Touch"
	ContactHeading = "Let's Connect"
	ContactBlurb   = `I'm always open to discussing new opportunities and interesting projects.
Feel free to reach out!`

	PrivacyNotice = `This site counts page views to understand which sections people read.
Visitor IP addresses are hashed with a per-process salt before storage and are never kept in raw form.
Requests sent with a Do Not Track header are not counted, and records older than twelve months are deleted.
Contact form messages are forwarded to my inbox and are not stored on this server; only the delivery outcome is recorded.`
)
