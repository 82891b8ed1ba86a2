package server

// Title is the document title of every fixture page.
const Title = "The Internet"

// layoutHTML wraps every page. Pages define "content".
const layoutHTML = `{{define "layout"}}<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>` + Title + `</title>
    <style>
        body { font-family: Helvetica, Arial, sans-serif; max-width: 800px; margin: 40px auto; }
        .flash { padding: 12px; margin-bottom: 16px; border-radius: 4px; }
        .flash.success { background: #5da423; color: #fff; }
        .flash.error { background: #c60f13; color: #fff; }
        .flash .close { float: right; color: inherit; text-decoration: none; }
        label { display: inline-block; min-width: 100px; }
        .row { margin-bottom: 12px; }
        p.error { color: #c60f13; }
    </style>
</head>
<body>
    <div class="row">
        <div id="flash-messages" class="large-12 columns">
            {{- with .Flash}}
            <div id="flash" class="flash {{.Kind}}" data-alert>
                {{.Message}}
                <a href="#" class="close">×</a>
            </div>
            {{- end}}
        </div>
    </div>
    <div id="content" class="large-12 columns">
        {{template "content" .}}
    </div>
</body>
</html>
{{end}}`

const indexHTML = `{{define "content"}}
<h1 class="heading">Welcome to the-internet</h1>
<h2>Available Examples</h2>
<ul>
    <li><a href="/checkboxes">Checkboxes</a></li>
    <li><a href="/dropdown">Dropdown</a></li>
    <li><a href="/login">Form Authentication</a></li>
    <li><a href="/formelements">Form Elements</a></li>
</ul>
{{end}}`

const loginHTML = `{{define "content"}}
<div class="example">
    <h2>Login Page</h2>
    <h4 class="subheader">This is where you can log into the secure area. Enter <em>tomsmith</em> for the username and <em>SuperSecretPassword!</em> for the password.</h4>
    <form name="login" id="login" action="/authenticate" method="post">
        <div class="row">
            <label for="username">Username</label>
            <input type="text" name="username" id="username">
        </div>
        <div class="row">
            <label for="password">Password</label>
            <input type="password" name="password" id="password">
        </div>
        <button class="radius" type="submit"><i class="fa fa-2x fa-sign-in"> Login</i></button>
    </form>
</div>
{{end}}`

const secureHTML = `{{define "content"}}
<div class="example">
    <h2><i class="icon-lock"></i> Secure Area</h2>
    <h4 class="subheader">Welcome to the Secure Area. When you are done click logout below.</h4>
    <a class="button secondary radius" href="/logout"><i class="icon-2x icon-signout"> Logout</i></a>
</div>
{{end}}`

const checkboxesHTML = `{{define "content"}}
<div class="example">
    <h3>Checkboxes</h3>
    <form id="checkboxes">
        <input type="checkbox" id="checkbox-1"><label for="checkbox-1">checkbox 1</label><br>
        <input type="checkbox" id="checkbox-2" checked><label for="checkbox-2">checkbox 2</label>
    </form>
</div>
{{end}}`

const dropdownHTML = `{{define "content"}}
<div class="example">
    <h3>Dropdown List</h3>
    <select id="dropdown">
        <option value="" disabled="disabled" selected="selected">Please select an option</option>
        <option value="1">Option 1</option>
        <option value="2">Option 2</option>
    </select>
</div>
{{end}}`

const formElementsHTML = `{{define "content"}}
<div class="example">
    <h3>Form Elements</h3>
    {{- with .Data}}{{if .Message}}
    <p{{if .Failed}} class="error"{{end}}>{{.Message}}</p>
    {{- end}}{{end}}
    <form id="form-elements" action="/formelements" method="post">
        <div class="row">
            <label for="fname">First name</label>
            <input type="text" id="fname" name="fname" value="{{with .Data}}{{.FirstName}}{{end}}">
        </div>
        <div class="row">
            <label for="lname">Last name</label>
            <input type="text" id="lname" name="lname" value="{{with .Data}}{{.LastName}}{{end}}">
        </div>
        <input type="submit" value="Submit">
    </form>
</div>
{{end}}`
