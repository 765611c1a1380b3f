package handler

import "net/http"

// Docs serves the static HTML documentation page at the root path.
func Docs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(docsPage))
}

const docsPage = `<!DOCTYPE html>
<html>
<head>
    <title>Cleaning Rota System</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; line-height: 1.6; }
        h1 { color: #333; }
        .container { max-width: 800px; margin: 0 auto; }
        .endpoints { background: #f4f4f4; padding: 20px; border-radius: 5px; }
        pre { background: #e4e4e4; padding: 10px; border-radius: 3px; overflow-x: auto; }
    </style>
</head>
<body>
    <div class="container">
        <h1>WhatsApp Cleaning Rota API</h1>
        <p>Welcome to the WhatsApp Cleaning Rota System. Use the following endpoints to manage your cleaning rota:</p>

        <div class="endpoints">
            <h2>Available Endpoints:</h2>
            <ul>
                <li><b>GET /api/members</b> - List all members</li>
                <li><b>POST /api/members</b> - Add a new member</li>
                <li><b>DELETE /api/members/{member_id}</b> - Remove a member</li>
                <li><b>GET /api/tasks</b> - List all tasks</li>
                <li><b>POST /api/tasks</b> - Add a new task</li>
                <li><b>DELETE /api/tasks/{task_id}</b> - Remove a task</li>
                <li><b>GET /api/assignments</b> - List all assignments</li>
                <li><b>POST /api/assign</b> - Create a new assignment</li>
                <li><b>POST /api/notify</b> - Send notifications to all members with current tasks</li>
                <li><b>POST /api/notify/{member_id}</b> - Send notification to a specific member</li>
            </ul>
        </div>

        <h2>Example: Adding a new member</h2>
        <pre>
POST /api/members
{
    "name": "John Doe",
    "phone": "+1234567890"
}
        </pre>

        <h2>WhatsApp Commands</h2>
        <p>Users can send the following commands to the Twilio WhatsApp number:</p>
        <ul>
            <li><b>tasks</b> - Get a list of your current tasks</li>
            <li><b>done [task name]</b> - Mark a task as complete</li>
            <li><b>help</b> - Get a list of available commands</li>
        </ul>
    </div>
</body>
</html>
`
