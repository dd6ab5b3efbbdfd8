package web

import "html/template"

var pageTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="pt-BR"><head>
<meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1"/>
<title>LinkedIn Company Scraper</title>
<link rel="icon" href="data:,">
<script src="https://cdn.tailwindcss.com"></script>
<script>
tailwind.config = { theme: { extend: {
  colors:{ primary:{DEFAULT:'hsl(200 98% 39%)', glow:'hsl(200 100% 50%)'}, success:'hsl(142 76% 36%)' },
  boxShadow:{ card:'0 2px 10px -1px rgba(18,38,63,.12)' }
}}}
</script>
<style>
.gradient-text{background:linear-gradient(135deg,hsl(200 98% 39%),hsl(200 100% 50%));-webkit-background-clip:text;background-clip:text;color:transparent}
th,td{white-space:nowrap}
</style>
</head>
<body class="bg-gray-50 text-gray-900">
<div class="max-w-3xl mx-auto px-4 py-8 space-y-6">
  <header class="text-center">
    <h1 class="text-3xl font-bold gradient-text">🔍 LinkedIn Company Scraper</h1>
  </header>

  <div class="bg-white border rounded-xl shadow-card p-5 space-y-3">
    <label class="block">
      <span class="text-sm">Empresa (como na URL do LinkedIn)</span>
      <input id="company" type="text" value="{{.Slug}}" class="mt-1 w-full border rounded-md px-3 py-2 focus:ring-2 focus:ring-primary">
    </label>
    <div class="text-sm text-gray-600">🔗 URL: <a id="derivedURL" href="{{.URL}}" target="_blank" class="text-primary underline">{{.URL}}</a></div>
    <button id="runBtn" class="w-full py-2 rounded-lg bg-primary text-white font-medium hover:opacity-90">Extrair dados da empresa</button>
  </div>

  <div class="bg-white border rounded-xl shadow-card p-5">
    <div class="flex items-center justify-between mb-3">
      <h2 class="text-lg font-semibold">Execução & Logs</h2>
      <span id="statusBadge" class="text-xs px-2 py-1 rounded-full bg-gray-100 text-gray-600">Aguardando</span>
    </div>
    <div id="logBox" class="border rounded-md bg-gray-50 h-40 overflow-y-auto p-3 text-xs font-mono text-gray-800">Aguardando logs…</div>
  </div>

  <div class="bg-white border rounded-xl shadow-card p-5">
    <div class="flex items-center justify-between mb-3">
      <h2 class="text-lg font-semibold">Resultado</h2>
      <a id="csvLink" href="/download" class="hidden text-sm px-3 py-1 rounded-md border hover:bg-gray-100">📥 Baixar CSV</a>
    </div>
    <div id="message" class="text-sm text-gray-500">Nenhum resultado ainda.</div>
    <div id="resultsWrap" class="hidden overflow-auto border rounded-md">
      <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50"><tr>
          {{range .Columns}}<th class="px-3 py-2 text-left font-medium text-gray-700">{{.}}</th>{{end}}
        </tr></thead>
        <tbody id="resultsBody"></tbody>
      </table>
    </div>
  </div>
</div>

<script>
(function () {
  const $ = id => document.getElementById(id);
  const keys = ['company_name','website','phone','company_size','headquarters','linkedin_url'];

  function escapeHTML(s){return (s||'').replace(/[&<>"']/g,m=>({'&':'&amp;','<':'&lt;','>':'&gt;','"':'&quot;',"'":'&#39;'}[m]));}

  function appendLog(line) {
    if ($('logBox').textContent.trim() === 'Aguardando logs…') $('logBox').textContent = '';
    const p = document.createElement('div');
    p.textContent = line;
    $('logBox').appendChild(p);
    $('logBox').scrollTop = $('logBox').scrollHeight;
  }

  function setStatus(txt, color) {
    $('statusBadge').textContent = txt;
    $('statusBadge').className = 'text-xs px-2 py-1 rounded-full ' + color;
  }

  $('company').addEventListener('input', async () => {
    const r = await fetch('/preview?company=' + encodeURIComponent($('company').value));
    if (!r.ok) return;
    const d = await r.json();
    $('derivedURL').textContent = d.url || '';
    $('derivedURL').href = d.url || '#';
  });

  $('runBtn').addEventListener('click', async () => {
    $('csvLink').classList.add('hidden');
    $('resultsWrap').classList.add('hidden');
    $('message').textContent = '';
    $('logBox').textContent = 'Aguardando logs…';
    setStatus('Rodando', 'bg-primary/10 text-primary');
    $('runBtn').disabled = true;

    const resp = await fetch('/run', {
      method: 'POST',
      headers: {'Content-Type':'application/json'},
      body: JSON.stringify({company: $('company').value})
    });
    if (!resp.ok) {
      setStatus('Erro HTTP', 'bg-red-100 text-red-700');
      appendLog('Erro: ' + resp.status + ' ' + resp.statusText);
      $('runBtn').disabled = false;
      return;
    }

    const reader = resp.body.getReader();
    const decoder = new TextDecoder();
    let buffer = '', finalData = null;
    while (true) {
      const {value, done} = await reader.read();
      if (done) break;
      buffer += decoder.decode(value, {stream:true});
      const parts = buffer.split('\n');
      buffer = parts.pop();
      for (const line of parts) {
        if (!line) continue;
        try {
          const ev = JSON.parse(line);
          if (ev.type === 'log') appendLog(ev.msg);
          else if (ev.type === 'done') finalData = ev.data;
        } catch { appendLog(line); }
      }
    }
    $('runBtn').disabled = false;

    if (!finalData || !finalData.ok) {
      setStatus('Falhou', 'bg-red-100 text-red-700');
      $('message').textContent = '❌ ' + ((finalData && finalData.message) || 'Falha ao extrair os dados da empresa.');
      if (finalData && finalData.record) renderRecord(finalData.record);
      return;
    }
    setStatus('Concluído', 'bg-green-100 text-green-700');
    $('message').textContent = '✅ Dados extraídos com sucesso!' + (finalData.phone_e164 ? ' Telefone: ' + finalData.phone_e164 : '');
    renderRecord(finalData.record);
    $('csvLink').classList.remove('hidden');
  });

  function renderRecord(r) {
    $('resultsBody').innerHTML = '<tr>' + keys.map(k => '<td class="px-3 py-2">' + escapeHTML(r[k]) + '</td>').join('') + '</tr>';
    $('resultsWrap').classList.remove('hidden');
  }
})();
</script>
</body></html>`))

type pageData struct {
	Slug    string
	URL     string
	Columns []string
}
