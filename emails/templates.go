package emails

import (
	"fmt"
	"html"
)

func welcomeEmailTemplate(name, profileUrl string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1>Welcome to UnLinked, %s!</h1>
  <p>Your account is ready. Complete your profile so people you know can find you:</p>
  <p><a href="%s">Go to your profile</a></p>
  <p>— The UnLinked team</p>
</body>
</html>`, html.EscapeString(name), profileUrl)
}

func connectionAcceptedEmailTemplate(senderName, recipientName, profileUrl string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1>Hi %s,</h1>
  <p><strong>%s</strong> accepted your connection request. You are now connected.</p>
  <p><a href="%s">View %s's profile</a></p>
  <p>— The UnLinked team</p>
</body>
</html>`, html.EscapeString(senderName), html.EscapeString(recipientName), profileUrl, html.EscapeString(recipientName))
}

func commentNotificationEmailTemplate(recipientName, commenterName, commentContent, postUrl string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1>Hi %s,</h1>
  <p><strong>%s</strong> commented on your post:</p>
  <blockquote>%s</blockquote>
  <p><a href="%s">View the conversation</a></p>
  <p>— The UnLinked team</p>
</body>
</html>`, html.EscapeString(recipientName), html.EscapeString(commenterName), html.EscapeString(commentContent), postUrl)
}
